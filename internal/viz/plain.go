package viz

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/player"
)

const (
	plainWidth  = 70
	plainHeight = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// PlainRenderer streams frames to a writer as a player.Observer, at most
// frameRate frames per second. The final frame is always drawn.
type PlainRenderer struct {
	out       io.Writer
	renderer  *lipgloss.Renderer
	palette   Palette
	algorithm string
	frameRate int
	lastFrame time.Time
	last      anim.Frame
	lastStep  int
	drawn     int
}

var _ player.Observer = (*PlainRenderer)(nil)

func NewPlainRenderer(out io.Writer, algorithm string, palette Palette, frameRate int) *PlainRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &PlainRenderer{
		out:       out,
		renderer:  lipgloss.NewRenderer(out),
		palette:   palette,
		algorithm: algorithm,
		frameRate: frameRate,
	}
}

// Frames returns how many frames were drawn.
func (r *PlainRenderer) Frames() int { return r.drawn }

func (r *PlainRenderer) OnStep(step int, ev anim.Event, frame anim.Frame) {
	r.last, r.lastStep = frame, step+1
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(fmt.Sprintf("step %d  %s", r.lastStep, ev))
}

func (r *PlainRenderer) OnHalt(err error) {
	switch {
	case err == nil:
		r.render(fmt.Sprintf("done after %d steps", r.lastStep))
	case errors.Is(err, player.ErrCanceled):
		r.render(fmt.Sprintf("stopped after %d steps", r.lastStep))
	default:
		r.render(fmt.Sprintf("halted after %d steps: %v", r.lastStep, err))
	}
}

func (r *PlainRenderer) render(status string) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  n=%d  settled=%d\n", r.algorithm, r.last.Len(), r.last.Settled()))
	b.WriteString("  " + strings.Repeat("-", plainWidth) + "\n")

	for _, line := range strings.Split(RenderBars(r.renderer, r.last, r.palette, plainWidth, plainHeight), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", plainWidth) + "\n")
	b.WriteString("  " + status + "\n")

	fmt.Fprint(r.out, b.String())
	r.drawn++
}

func (r *PlainRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *PlainRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
