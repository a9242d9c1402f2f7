package player

import "github.com/san-kum/sortviz/internal/anim"

// PlaybackLog exposes the log a running playback steps through.
func PlaybackLog(pb *Playback) anim.Log { return pb.stepper.log }
