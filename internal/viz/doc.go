// Package viz renders a running gas in the terminal.
//
// The package draws on a braille canvas inside a Bubble Tea program:
//
//   - [Canvas]: braille pixel canvas, 2x4 dots per terminal cell
//   - [Model]: live simulation view with a metrics side panel
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the initial state
//	+/-   - Double/halve the steps per frame
//	?     - Toggle help overlay
//	Q     - Quit
package viz
