package heat

import "testing"

func benchSolver(b *testing.B, size, chunk int) {
	p := DefaultParams()
	p.Width, p.Height, p.ChunkSize = size, size, chunk
	s, err := New(p, SeederFunc(func(f *Field) {
		for i := range f.data {
			f.data[i] = float32(i % 100)
		}
	}))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Tick(1.0 / 64)
	}
}

func BenchmarkTick_256_Chunk16(b *testing.B)  { benchSolver(b, 256, 16) }
func BenchmarkTick_256_Chunk256(b *testing.B) { benchSolver(b, 256, 256) }
func BenchmarkTick_64_Chunk8(b *testing.B)    { benchSolver(b, 64, 8) }
