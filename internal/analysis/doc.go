// Package analysis derives summaries from recorded heat frames.
//
//   - [RowProfile] and [ColumnProfile]: temperature along one grid line
//   - [PowerSpectrum]: spatial frequency content of a profile
//   - [RelaxationSweep]: first sweep at which the field is near equilibrium
//
// # Equilibrium
//
// A field relaxes towards a uniform temperature under the insulated
// boundary, so the spread of each frame decreases towards zero:
//
//	sweep, ok := analysis.RelaxationSweep(frames, 0.5)
//	if ok {
//	    // spread fell below 0.5 degrees at sweep
//	}
package analysis
