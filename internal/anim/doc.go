// Package anim defines the data model shared by the recorder and the player.
//
// A sorting run is described in three stages:
//
//   - [Values]: the bar heights handed to the recorder by value
//   - [Log]: the ordered [Event] stream the recorder emits
//   - [Display]: the live values and per-position [Marker]s the player mutates
//
// # Events
//
// Three event kinds exist. A compare names two positions that were just
// examined, a swap exchanges two values, and a finalize marks one position as
// settled for the rest of the run.
//
//	log := anim.Log{anim.Compare(0, 1), anim.Swap(1, 0), anim.Finalize(0)}
//	if err := log.Validate(len(values)); err != nil { ... }
//
// # Thread Safety
//
// [Display] is safe for one writer and many readers. Writers go through
// [Display.Update] with the generation they were started under; once the
// display is reset or invalidated, updates from older generations are dropped.
package anim
