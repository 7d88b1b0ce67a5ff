package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/logofall/internal/field"
)

func TestRasterize_Box(t *testing.T) {
	ps := []field.Particle{{
		Logo:     field.Logo{Label: "Go"},
		Position: field.Vec2{X: 20, Y: 20},
	}}
	lines := rasterize(ps, 12, 6, 10, 20, 60).plain()

	want := []string{
		"            ",
		"  ╭────╮    ",
		"  │ Go │    ",
		"  ╰────╯    ",
		"            ",
		"            ",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRasterize_ClipsOffscreen(t *testing.T) {
	ps := []field.Particle{
		{Logo: field.Logo{Label: "Python"}, Position: field.Vec2{X: -30, Y: -100}},
		{Logo: field.Logo{Label: "MySQL"}, Position: field.Vec2{X: 780, Y: 590}},
	}
	g := rasterize(ps, 80, 30, 10, 20, 100)
	if len(g) != 30 || len(g[0]) != 80 {
		t.Fatalf("unexpected grid size %dx%d", len(g[0]), len(g))
	}
	lines := g.plain()
	if strings.TrimSpace(strings.Join(lines[:29], "")) != "" {
		t.Error("fully offscreen particle should not be drawn")
	}
	if !strings.HasSuffix(lines[29], "╭─") {
		t.Errorf("expected clipped box corner, got %q", lines[29])
	}
}

func TestRasterize_TruncatesLabel(t *testing.T) {
	ps := []field.Particle{{Logo: field.Logo{Label: "JavaScript"}}}
	lines := rasterize(ps, 10, 5, 10, 20, 60).plain()
	if lines[1] != "│Java│    " {
		t.Errorf("got %q", lines[1])
	}
}

func TestRasterize_TinyParticle(t *testing.T) {
	ps := []field.Particle{{Logo: field.Logo{Label: "Go"}, Highlighted: true}}
	g := rasterize(ps, 4, 2, 10, 20, 20)
	if !g[0][0].hl || !g[0][0].set {
		t.Error("expected highlighted cell")
	}
	if g.plain()[0] != "G▪  " {
		t.Errorf("got %q", g.plain()[0])
	}
}

func newTestModel() Model {
	vp := field.Viewport{Width: 800, Height: 440}
	logos := []field.Logo{{Label: "React.js"}, {Label: "Go"}}
	f := field.New(logos, vp, field.DefaultConfig(), rand.New(rand.NewSource(9)))
	return NewModel(f, DefaultOptions())
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	vp := m.Viewport()
	if vp.Width != 1000 || vp.Height != 760 {
		t.Errorf("unexpected viewport %+v", vp)
	}
	for _, p := range m.snapshot {
		if p.Position.X > vp.Width-100 {
			t.Errorf("particle not respawned into new viewport: x=%f", p.Position.X)
		}
	}
}

func TestModel_MouseSetsPointer(t *testing.T) {
	m := newTestModel()
	m.Update(tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionMotion})

	got := m.field.Pointer()
	if got != (field.Pointer{X: 45, Y: 50}) {
		t.Errorf("expected pointer (45, 50), got %v", got)
	}
}

func TestModel_TickAdvances(t *testing.T) {
	m := newTestModel()
	before := m.snapshot[0].Position.Y

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should reschedule itself")
	}
	if m.snapshot[0].Position.Y <= before {
		t.Error("particle did not fall")
	}
	if m.field.Frame() != 1 {
		t.Errorf("expected frame 1, got %d", m.field.Frame())
	}
}

func TestModel_Pause(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	if !m.paused {
		t.Fatal("expected paused")
	}

	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.field.Frame() != 0 {
		t.Error("paused model should not step")
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("view should show paused state")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel()
	view := m.View()
	if !strings.Contains(view, "highlighted 0/2") {
		t.Errorf("status line missing: %q", view)
	}
}
