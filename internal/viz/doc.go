// Package viz renders a running simulation in the terminal.
//
//   - [Canvas]: braille pixel canvas, 2×4 dots per cell
//   - [DrawWorld]: ground line, bodies, trajectories and velocity vectors
//   - [EnergyGraph]: asciigraph plot of mechanical energy
//   - [Model]: Bubble Tea live view stepping a sim.Stepper
//
// # Key Bindings
//
//	Space - Run/Pause
//	S     - Single step
//	R     - Reset to initial state
//	T     - Cycle color themes
//	?     - Toggle help
//	Q     - Quit
package viz
