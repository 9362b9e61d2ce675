// Package seed provides initial temperature strategies for heat.Solver.
package seed

import (
	"math/rand/v2"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/heatsim/internal/heat"
)

const (
	// DefaultNoiseScale is the spatial frequency used when a scale of zero is
	// requested.
	DefaultNoiseScale = 0.1

	noiseAlpha = 2.0
	noiseBeta  = 2.0
)

// Uniform draws every cell independently from [lo, hi).
func Uniform(seed int64, lo, hi float32) heat.Seeder {
	return heat.SeederFunc(func(f *heat.Field) {
		r := rand.New(rand.NewPCG(uint64(seed), 0))
		v := f.Values()
		for i := range v {
			v[i] = lo + r.Float32()*(hi-lo)
		}
	})
}

// Noise samples 2-D Perlin noise at (x*scale, y*scale) and remaps it from
// [-1, 1] to [lo, hi]. octaves controls the number of summed layers.
func Noise(seed int64, scale float64, octaves int32, lo, hi float32) heat.Seeder {
	if scale <= 0 {
		scale = DefaultNoiseScale
	}
	if octaves <= 0 {
		octaves = 3
	}
	return heat.SeederFunc(func(f *heat.Field) {
		p := perlin.NewPerlin(noiseAlpha, noiseBeta, octaves, seed)
		for y := 0; y < f.H; y++ {
			for x := 0; x < f.W; x++ {
				n := p.Noise2D(float64(x)*scale, float64(y)*scale)
				if n < -1 {
					n = -1
				} else if n > 1 {
					n = 1
				}
				f.Set(x, y, lo+float32((n+1)/2)*(hi-lo))
			}
		}
	})
}

// Constant sets every cell to v.
func Constant(v float32) heat.Seeder {
	return heat.SeederFunc(func(f *heat.Field) { f.Fill(v) })
}

// HotEdge sets the bottom row to hot and everything else to cold.
func HotEdge(cold, hot float32) heat.Seeder {
	return heat.SeederFunc(func(f *heat.Field) {
		f.Fill(cold)
		for x := 0; x < f.W; x++ {
			f.Set(x, f.H-1, hot)
		}
	})
}

// Rows copies values[y][x] into the field. Rows or columns beyond the grid
// are ignored; missing ones keep the solver's fill value.
func Rows(values [][]float32) heat.Seeder {
	return heat.SeederFunc(func(f *heat.Field) {
		for y, row := range values {
			if y >= f.H {
				break
			}
			for x, v := range row {
				if x >= f.W {
					break
				}
				f.Set(x, y, v)
			}
		}
	})
}
