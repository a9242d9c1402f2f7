// Package player replays an anim.Log against an anim.Display at a fixed
// per-step cadence.
//
// The work is split in two:
//
//   - [Stepper]: a synchronous interpreter that applies one event per call
//   - [Player]: owns the display and runs one [Playback] at a time, a single
//     goroutine with one timer that drives the stepper
//
// # Example
//
//	d := anim.NewDisplay(values)
//	p := player.New(d)
//	pb, err := p.Play(log, 5*time.Millisecond)
//	if err != nil { ... }
//	err = pb.Wait(ctx)
//
// Starting a new playback, or calling [Player.Stop], supersedes the current
// one. Superseded steps never write to the display, even if already in
// flight, because every write is guarded by the display generation.
package player
