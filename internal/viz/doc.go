// Package viz draws the engines on a terminal.
//
//   - [Canvas]: braille dot canvas with 2D viewports and a perspective
//     [Camera] for the Lorenz trail
//   - [HalfBlocks]: true-color rendering of a fractal raster
//   - [Model]: bubbletea live view for the ODE engines
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the initial state
//	Tab   - Select parameter
//	↑/↓   - Scale parameter by ±5%
//	T     - Cycle color themes
package viz
