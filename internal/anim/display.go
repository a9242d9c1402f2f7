package anim

import "sync"

// Frame is a point-in-time copy of a Display for renderers.
type Frame struct {
	Values     Values
	Markers    []Marker
	Generation uint64
}

func (f Frame) Len() int { return len(f.Values) }

func (f Frame) Settled() int {
	n := 0
	for _, m := range f.Markers {
		if m == MarkerSettled {
			n++
		}
	}
	return n
}

// Display is the live state a player writes and renderers read.
type Display struct {
	mu      sync.RWMutex
	values  Values
	markers []Marker
	gen     uint64
}

func NewDisplay(values Values) *Display {
	return &Display{
		values:  values.Clone(),
		markers: make([]Marker, len(values)),
		gen:     1,
	}
}

func (d *Display) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.values)
}

func (d *Display) Generation() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.gen
}

// Update applies fn as one atomic step if gen is still the current
// generation. It reports whether fn ran.
func (d *Display) Update(gen uint64, fn func(values Values, markers []Marker)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	fn(d.values, d.markers)
	return true
}

// Reset replaces the values, clears every marker and starts a new generation.
func (d *Display) Reset(values Values) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values = values.Clone()
	d.markers = make([]Marker, len(values))
	d.gen++
	return d.gen
}

// Invalidate starts a new generation without touching values or markers.
// Writers holding an older generation become no-ops.
func (d *Display) Invalidate() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	return d.gen
}

// Supersede invalidates gen if it is still current and reports whether it
// did. A newer generation is left alone.
func (d *Display) Supersede(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	d.gen++
	return true
}

// Restart is Invalidate plus clearing every marker back to default, as one
// update. Values are kept.
func (d *Display) Restart() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.markers {
		d.markers[i] = MarkerDefault
	}
	d.gen++
	return d.gen
}

func (d *Display) Values() Values {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.values.Clone()
}

func (d *Display) Snapshot() Frame {
	d.mu.RLock()
	defer d.mu.RUnlock()
	markers := make([]Marker, len(d.markers))
	copy(markers, d.markers)
	return Frame{
		Values:     d.values.Clone(),
		Markers:    markers,
		Generation: d.gen,
	}
}
