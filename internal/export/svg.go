package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/viz"
)

const background = "#0a0a0a"

// svgColor returns c when it is a hex colour, otherwise the classic theme
// colour for m. ANSI indexes have no SVG form.
func svgColor(c string, m anim.Marker) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	return string(viz.ThemeClassic.Palette.For(m))
}

// FrameToSVG draws frame as a bar chart, one bar per value coloured by its
// marker.
func FrameToSVG(frame anim.Frame, palette viz.Palette, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	n := frame.Len()
	if n > 0 {
		lo, hi := 0.0, frame.Values.Max()
		for _, v := range frame.Values {
			if v < lo {
				lo = v
			}
		}
		if hi <= lo {
			hi = lo + 1
		}

		slot := float64(width) / float64(n)
		gap := slot * 0.1
		for i, v := range frame.Values {
			m := frame.Markers[i]
			h := (v - lo) / (hi - lo) * float64(height)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*slot+gap/2, float64(height)-h, slot-gap, h, svgColor(string(palette.For(m)), m)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
