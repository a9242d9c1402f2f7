package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/recorder"
	"github.com/san-kum/sortviz/internal/session"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 42
	historyCapacity = 120
)

// AlgorithmOrder is the order of the tab cycle and the 1-6 keys.
var AlgorithmOrder = []string{
	recorder.Selection,
	recorder.Bubble,
	recorder.Insertion,
	recorder.Merge,
	recorder.Quick,
	recorder.Heap,
}

type TickMsg time.Time

// App is the interactive bar chart. It never writes the display; every frame
// is pulled from the session on a tick.
type App struct {
	session   *session.Session
	keys      KeyMap
	help      help.Model
	renderer  *lipgloss.Renderer
	theme     Theme
	palette   Palette
	styles    styles
	frameRate int

	width, height int
	run           *player.Playback
	err           error
	progress      []float64
	ticks         int
}

func NewApp(s *session.Session) App {
	cfg := s.Config()
	r := lipgloss.DefaultRenderer()
	theme := GetTheme(cfg.Theme)

	frameRate := cfg.FrameRate
	if frameRate <= 0 {
		frameRate = 30
	}

	return App{
		session:   s,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		renderer:  r,
		theme:     theme,
		palette:   theme.Palette.With(cfg.Colors),
		styles:    newStyles(r, theme),
		frameRate: frameRate,
		width:     width,
		height:    height,
		progress:  make([]float64, 0, historyCapacity),
	}
}

func (m App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m App) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and pulls frames.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.session.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Sort):
			m.sort()
		case key.Matches(msg, m.keys.Next):
			m.cycleAlgorithm(1)
		case key.Matches(msg, m.keys.Prev):
			m.cycleAlgorithm(-1)
		case key.Matches(msg, m.keys.Select):
			m.selectAlgorithm(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.Regenerate):
			if _, err := m.session.Regenerate(); err != nil {
				m.err = err
			} else {
				m.run, m.err = nil, nil
				m.progress = m.progress[:0]
			}
		case key.Matches(msg, m.keys.Stop):
			m.session.Stop()
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme.Name)
			m.palette = m.theme.Palette.With(m.session.Config().Colors)
			m.styles = newStyles(m.renderer, m.theme)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case TickMsg:
		m.ticks++
		if m.run != nil && !m.run.Finished() {
			applied, total := m.run.Progress()
			if total > 0 {
				m.progress = append(m.progress, 100*float64(applied)/float64(total))
				if len(m.progress) > historyCapacity {
					m.progress = m.progress[1:]
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *App) sort() {
	pb, err := m.session.Sort("")
	if err != nil {
		m.err = err
		return
	}
	m.run, m.err = pb, nil
	m.progress = m.progress[:0]
}

func (m *App) cycleAlgorithm(dir int) {
	current := m.session.Algorithm()
	for i, name := range AlgorithmOrder {
		if name == current {
			m.selectAlgorithm((i + dir + len(AlgorithmOrder)) % len(AlgorithmOrder))
			return
		}
	}
	m.selectAlgorithm(0)
}

func (m *App) selectAlgorithm(i int) {
	if i < 0 || i >= len(AlgorithmOrder) {
		return
	}
	if err := m.session.SetAlgorithm(AlgorithmOrder[i]); err != nil {
		m.err = err
	}
}

// status reports the state of the latest run and its error, if it halted.
func (m App) status() (string, lipgloss.Style, error) {
	if m.run == nil {
		return "IDLE", m.styles.muted, nil
	}
	if !m.run.Finished() {
		return AnimatedSpinner(m.ticks) + " RUNNING", m.styles.running, nil
	}
	err := m.run.Err()
	switch {
	case err == nil:
		return "DONE", m.styles.done, nil
	case errors.Is(err, player.ErrCanceled):
		return "STOPPED", m.styles.stopped, nil
	default:
		return "HALTED", m.styles.errText, err
	}
}

// View renders the TUI interface.
func (m App) View() string {
	chartWidth := m.width - statsWidth - 6
	if chartWidth < 10 {
		chartWidth = 10
	}
	chartHeight := m.height - 6
	if m.help.ShowAll {
		chartHeight -= 3
	}
	if chartHeight < 4 {
		chartHeight = 4
	}

	frame := m.session.Frame()
	canvasView := m.styles.canvas.Render(RenderBars(m.renderer, frame, m.palette, chartWidth, chartHeight))

	algorithm := m.session.Algorithm()
	var s strings.Builder
	s.WriteString(GradientText("SORTVIZ", m.theme.Title, m.theme.Accent) + "\n")
	s.WriteString(m.styles.header.Render(strings.ToUpper(algorithm)) + "\n")

	state, style, haltErr := m.status()
	s.WriteString(style.Render(state) + "\n\n")

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("About", recorder.Describe(algorithm))
	row("Size", fmt.Sprintf("%d", frame.Len()))
	row("Settled", fmt.Sprintf("%d/%d", frame.Settled(), frame.Len()))

	if m.run != nil {
		stats := m.session.LastStats()
		applied, total := m.run.Progress()
		fraction := 1.0
		if total > 0 {
			fraction = float64(applied) / float64(total)
		}
		row("Step", fmt.Sprintf("%d/%d", applied, total))
		row("Progress", ProgressBar(fraction, 20))
		live := m.session.Applied()
		row("Compares", fmt.Sprintf("%d/%d", live.Compares, stats.Counts.Compares))
		row("Swaps", fmt.Sprintf("%d/%d", live.Swaps, stats.Counts.Swaps))
		row("Rate", fmt.Sprintf("%.0f steps/s", m.session.Rate()))
	}
	row("Theme", m.theme.Name)

	if len(m.progress) > 1 {
		chart := asciigraph.Plot(m.progress, asciigraph.Height(3), asciigraph.Width(30), asciigraph.Caption("Progress %"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	if haltErr == nil {
		haltErr = m.err
	}
	if haltErr != nil {
		s.WriteString("\n" + m.styles.errText.Width(statsWidth-4).Render("error: "+haltErr.Error()) + "\n")
	}

	statsView := m.styles.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	return lipgloss.JoinVertical(lipgloss.Left, mainView, m.help.View(m.keys))
}
