// Package viz renders sorting playbacks in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: bar chart of the session display with a status panel
//   - [PlainRenderer]: ANSI frame stream for non-interactive playback
//   - Theme selection with 5 built-in color schemes
//
// Bars are coloured by marker: default, comparing and settled each take a
// colour from the active [Palette]. Colours from the config override the
// theme.
//
// # Key Bindings
//
//	Enter/Space - Sort with the selected algorithm
//	Tab         - Next algorithm (Shift+Tab previous)
//	1-6         - Pick algorithm
//	G           - Generate new values
//	S           - Stop the running sort
//	T           - Cycle color themes
//	?           - Toggle full help
//	Q           - Quit
package viz
