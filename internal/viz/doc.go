// Package viz provides the terminal viewer for training-run artifacts.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Viewer]: tabbed model over a session (curves, field, embedding, videos)
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Scatter]: glyph grid for the student/teacher embedding
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Tab   - Next view (1-4 jump directly)
//	Space - Play/Pause the vector field
//	R     - Back to frame 0, paused
//	[ ]   - Previous/next frame
//	M     - Next learning-curve metric
//	O     - Open the selected video in the system player
//	T     - Cycle color themes
//	Q     - Quit
package viz
