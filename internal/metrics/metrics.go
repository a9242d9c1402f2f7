// Package metrics holds player observers that measure a playback as it
// runs. Each metric restarts when it sees step 0 of a new run.
package metrics

import "github.com/san-kum/sortviz/internal/player"

type Metric interface {
	player.Observer
	Name() string
	Value() float64
	Reset()
}
