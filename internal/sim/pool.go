package sim

import "sync"

// FramePool recycles temperature snapshot buffers of a fixed size.
type FramePool struct {
	pool sync.Pool
	size int
}

func NewFramePool(cells int) *FramePool {
	return &FramePool{
		size: cells,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float32, cells)
			},
		},
	}
}

func (p *FramePool) Get() []float32 {
	return p.pool.Get().([]float32)
}

func (p *FramePool) Put(buf []float32) {
	if len(buf) == p.size {
		for i := range buf {
			buf[i] = 0
		}
		p.pool.Put(buf)
	}
}

// Release returns every frame buffer of r to the pool.
func (p *FramePool) Release(r *Result) {
	for i := range r.Frames {
		p.Put(r.Frames[i].Temps)
		r.Frames[i].Temps = nil
	}
}
