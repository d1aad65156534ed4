package viz

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/barmotion/internal/chart"
	"github.com/san-kum/barmotion/internal/composition"
	"github.com/san-kum/barmotion/internal/export"
	"github.com/san-kum/barmotion/internal/scene"
)

const (
	canvasWidth  = 64
	canvasHeight = 18
	barColumns   = 48
)

var (
	panelStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

type TickMsg time.Time

// Model plays a composition in the terminal. It drives the same renderer
// as the exporters against a private surface.
type Model struct {
	comp     composition.Composition
	renderer *chart.Renderer
	surface  *scene.Surface
	canvas   *Canvas
	theme    Theme

	frame    int
	last     chart.Result
	history  []float64
	running  bool
	braille  bool
	showHelp bool

	recording bool
	gif       *export.GIF
	gifPath   string
	status    string
	err       error

	log *slog.Logger
}

func NewModel(comp composition.Composition) (Model, error) {
	r, err := chart.NewRenderer(comp.Chart, comp.Data)
	if err != nil {
		return Model{}, err
	}
	s := scene.NewSurface()
	s.Attach(float64(comp.Width), float64(comp.Height))

	m := Model{
		comp:     comp,
		renderer: r,
		surface:  s,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		theme:    ThemeClassic,
		running:  true,
		gifPath:  comp.ID + ".gif",
		log:      slog.Default().With(slog.String("module", "viz")),
	}
	m.draw()
	return m, nil
}

// WithGIFPath sets where a recording is written when it stops.
func (m Model) WithGIFPath(path string) Model {
	m.gifPath = path
	return m
}

func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) Frame() int { return m.frame }

func (m Model) Err() error { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.comp.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "left", "h":
			m.running = false
			m.seek(m.frame - 1)
		case "right", "l":
			m.running = false
			m.seek(m.frame + 1)
		case "r":
			m.history = m.history[:0]
			m.seek(0)
		case "v":
			m.braille = !m.braille
			if m.braille {
				m.canvas.Rasterize(m.surface)
			}
		case "t":
			m.theme = nextTheme(m.theme)
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.gif = export.NewGIF(m.comp.FPS)
				m.status = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			next := m.frame + 1
			if next >= m.comp.DurationInFrames {
				next = 0
				m.history = m.history[:0]
			}
			m.seek(next)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) seek(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame >= m.comp.DurationInFrames {
		frame = m.comp.DurationInFrames - 1
	}
	m.frame = frame
	m.draw()
}

func (m *Model) draw() {
	res, err := m.renderer.Render(m.surface, m.frame, m.comp.Video())
	if err != nil {
		m.err = err
		return
	}
	m.last = res
	m.history = append(m.history, res.Progress)
	if m.braille {
		m.canvas.Rasterize(m.surface)
	}
	if m.recording && m.gif != nil {
		if err := m.gif.Add(m.surface); err != nil {
			m.err = err
		}
	}
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	g := m.gif
	m.gif = nil
	if g == nil || g.Len() == 0 {
		m.status = "nothing recorded"
		return
	}
	if err := m.saveGIF(g); err != nil {
		m.err = err
		m.status = "gif failed"
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", g.Len(), m.gifPath)
}

func (m *Model) saveGIF(g *export.GIF) error {
	f, err := os.Create(m.gifPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := g.Encode(f); err != nil {
		return err
	}
	m.log.Info("gif saved", slog.String("path", m.gifPath), slog.Int("frames", g.Len()))
	return nil
}

// bars draws each row as a run of block characters scaled to the axis.
func (m Model) bars() string {
	if len(m.last.State) == 0 {
		return ""
	}
	l := m.renderer.Builder().Layout(float64(m.comp.Width), float64(m.comp.Height))
	span := l.X.R1 - l.X.R0
	if span <= 0 {
		span = 1
	}

	bar := lipgloss.NewStyle().Foreground(m.theme.Bar)
	key := lipgloss.NewStyle().Foreground(m.theme.Axis).Width(3)
	label := lipgloss.NewStyle().Foreground(m.theme.Label)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var b strings.Builder
	for i, st := range m.last.State {
		cells := int(st.Width / span * barColumns)
		line := key.Render(st.Category) + bar.Render(strings.Repeat("█", cells))
		text := ""
		if i < len(l.Rows) {
			text = l.Rows[i].Label
		}
		if st.Outside {
			line += " " + muted.Render(text)
		} else if cells > 0 {
			line += " " + label.Render(text)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) View() string {
	var main string
	if m.braille {
		main = lipgloss.NewStyle().Foreground(m.theme.Bar).Render(m.canvas.String())
	} else {
		main = m.bars()
	}

	state := "PLAYING"
	if !m.running {
		state = "PAUSED"
	}
	if m.recording {
		state += " REC"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(m.theme.Accent).Render(strings.ToUpper(m.comp.ID)) + "\n")
	s.WriteString(state + "\n\n")
	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("progress"))
		s.WriteString(graph + "\n\n")
	}
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d / %d", m.frame, m.comp.DurationInFrames)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", float64(m.frame)/float64(m.comp.FPS))) + "\n")
	s.WriteString(labelStyle.Render("Progress") + valueStyle.Render(fmt.Sprintf("%.4f", m.last.Progress)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n")
	if m.status != "" {
		s.WriteString(labelStyle.Render("Status") + valueStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		s.WriteString(labelStyle.Render("Error") + valueStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause ←→:Step R:Restart\nV:View T:Theme G:Record ?:Help Q:Quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(main), statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  Space   pause / resume
  ← →     step one frame
  R       restart from frame 0
  V       toggle bars / braille
  T       cycle themes
  G       start / stop GIF recording
  ?       toggle this help
  Q       quit
`
