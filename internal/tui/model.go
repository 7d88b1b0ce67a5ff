package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/logofall/internal/field"
	"github.com/san-kum/logofall/internal/metrics"
)

const statusLines = 2

type Options struct {
	// CellWidth and CellHeight are the viewport pixels covered by one
	// terminal cell.
	CellWidth  float64
	CellHeight float64
	FPS        int
}

func DefaultOptions() Options {
	return Options{CellWidth: 10, CellHeight: 20, FPS: 60}
}

type tickMsg time.Time

type Model struct {
	field    *field.Field
	opts     Options
	cols     int
	rows     int
	sized    bool
	paused   bool
	showHelp bool
	snapshot []field.Particle
}

func NewModel(f *field.Field, opts Options) Model {
	def := DefaultOptions()
	if opts.CellWidth <= 0 {
		opts.CellWidth = def.CellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = def.CellHeight
	}
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	return Model{
		field:    f,
		opts:     opts,
		cols:     80,
		rows:     24,
		snapshot: f.Snapshot(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Viewport is the pixel area covered by the drawable part of the terminal.
func (m Model) Viewport() field.Viewport {
	return field.Viewport{
		Width:  float64(m.cols) * m.opts.CellWidth,
		Height: float64(max(0, m.rows-statusLines)) * m.opts.CellHeight,
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.field.Reset(m.Viewport())
			m.snapshot = m.field.Snapshot()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		if !m.sized && m.field.Frame() == 0 {
			m.field.Reset(m.Viewport())
			m.snapshot = m.field.Snapshot()
		}
		m.sized = true
	case tea.MouseMsg:
		m.field.SetPointer(
			(float64(msg.X)+0.5)*m.opts.CellWidth,
			(float64(msg.Y)+0.5)*m.opts.CellHeight,
		)
	case tickMsg:
		if !m.paused {
			m.snapshot = m.field.Step(m.Viewport())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	rows := max(0, m.rows-statusLines)
	canvas := rasterize(m.snapshot, m.cols, rows, m.opts.CellWidth, m.opts.CellHeight, m.field.Config().Size)

	status := statusStyle.Render(fmt.Sprintf("frame %d  highlighted %d/%d",
		m.field.Frame(), metrics.Highlighted(m.snapshot), len(m.snapshot)))
	if m.paused {
		status += "  " + pausedStyle.Render("paused")
	}

	hint := helpStyle.Render("? help  q quit")
	if m.showHelp {
		hint = helpStyle.Render("space pause  r respawn  ? help  q quit  (move the mouse over a logo)")
	}

	return canvas.String() + "\n" + status + "\n" + hint
}

// Run starts the terminal presentation layer and blocks until the user quits.
func Run(f *field.Field, opts Options) error {
	p := tea.NewProgram(NewModel(f, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
