//go:build !ebiten

package gui

import "github.com/san-kum/heatsim/internal/heat"

// Run reports ErrUnavailable in headless builds.
func Run(solver *heat.Solver, seeder heat.Seeder, opts Options) error {
	return ErrUnavailable
}
