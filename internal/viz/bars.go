package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/anim"
)

var eighths = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// column is one rendered bar, possibly covering several values.
type column struct {
	units  int
	marker anim.Marker
}

// layoutColumns buckets frame values into at most width columns, each
// scaled to height rows of eighth-block units.
func layoutColumns(frame anim.Frame, width, height int) []column {
	n := frame.Len()
	if n == 0 || width <= 0 || height <= 0 {
		return nil
	}

	lo, hi := 0.0, frame.Values.Max()
	for _, v := range frame.Values {
		if v < lo {
			lo = v
		}
	}
	if hi <= lo {
		hi = lo + 1
	}

	cols := n
	if cols > width {
		cols = width
	}
	out := make([]column, cols)
	for c := range out {
		start, end := c*n/cols, (c+1)*n/cols
		peak := frame.Values[start]
		comparing, settled := false, true
		for i := start; i < end; i++ {
			if frame.Values[i] > peak {
				peak = frame.Values[i]
			}
			switch frame.Markers[i] {
			case anim.MarkerComparing:
				comparing = true
				settled = false
			case anim.MarkerDefault:
				settled = false
			}
		}

		units := int((peak - lo) / (hi - lo) * float64(height*8))
		if units < 1 {
			units = 1
		}
		out[c].units = units
		switch {
		case comparing:
			out[c].marker = anim.MarkerComparing
		case settled:
			out[c].marker = anim.MarkerSettled
		}
	}
	return out
}

// RenderBars draws frame as a vertical bar chart. Consecutive cells of the
// same colour are styled as one run.
func RenderBars(r *lipgloss.Renderer, frame anim.Frame, palette Palette, width, height int) string {
	cols := layoutColumns(frame, width, height)
	if len(cols) == 0 {
		return strings.Repeat("\n", max(height-1, 0))
	}

	barWidth := width / len(cols)
	if barWidth > 4 {
		barWidth = 4
	}
	gap := 0
	if barWidth >= 2 {
		gap = 1
		barWidth--
	}

	styles := map[anim.Marker]lipgloss.Style{
		anim.MarkerDefault:   r.NewStyle().Foreground(palette.Default),
		anim.MarkerComparing: r.NewStyle().Foreground(palette.Comparing),
		anim.MarkerSettled:   r.NewStyle().Foreground(palette.Settled),
	}

	var b strings.Builder
	var run strings.Builder
	for row := height - 1; row >= 0; row-- {
		runMarker := anim.MarkerDefault
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(styles[runMarker].Render(run.String()))
				run.Reset()
			}
		}
		for _, c := range cols {
			cell := ' '
			if rest := c.units - row*8; rest >= 8 {
				cell = '█'
			} else if rest > 0 {
				cell = eighths[rest-1]
			}
			if c.marker != runMarker {
				flush()
				runMarker = c.marker
			}
			run.WriteString(strings.Repeat(string(cell), barWidth))
			run.WriteString(strings.Repeat(" ", gap))
		}
		flush()
		if row > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
