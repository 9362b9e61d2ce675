// Package viz renders a heat solver in the terminal with Bubble Tea.
//
//   - [Model]: live heat map with metric history and replay
//   - [RunInteractive]: preset picker that opens a live view
//   - [Recorder]: GIF capture of committed sweeps
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Advance one tick
//	W     - Advance one full sweep
//	R     - Reseed the field
//	N     - Toggle numeric overlay
//	P     - Cycle palettes
//	[ ]   - Replay committed sweeps
//	G     - Toggle GIF recording
//	T     - Cycle themes
//	Q     - Quit
package viz
