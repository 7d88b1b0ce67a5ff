package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/logofall/internal/field"
)

var (
	idleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#334155"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pausedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type cell struct {
	r   rune
	hl  bool
	set bool
}

type grid [][]cell

func newGrid(cols, rows int) grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g := make(grid, rows)
	for i := range g {
		g[i] = make([]cell, cols)
	}
	return g
}

func (g grid) put(x, y int, r rune, hl bool) {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return
	}
	g[y][x] = cell{r: r, hl: hl, set: true}
}

// rasterize draws each particle as a box of size×size pixels scaled down to
// cells, with its label on the middle row.
func rasterize(ps []field.Particle, cols, rows int, cellW, cellH, size float64) grid {
	g := newGrid(cols, rows)

	w := max(2, int(math.Round(size/cellW)))
	h := max(1, int(math.Round(size/cellH)))

	for _, p := range ps {
		x0 := int(math.Floor(p.Position.X / cellW))
		y0 := int(math.Floor(p.Position.Y / cellH))
		drawBox(g, x0, y0, w, h, p.Highlighted)

		label := []rune(p.Label)
		if room := w - 2; len(label) > room {
			if room <= 0 {
				label = label[:min(len(label), 1)]
			} else {
				label = label[:room]
			}
		}
		lx := x0 + (w-len(label))/2
		ly := y0 + h/2
		for i, r := range label {
			g.put(lx+i, ly, r, p.Highlighted)
		}
	}
	return g
}

func drawBox(g grid, x0, y0, w, h int, hl bool) {
	if h < 3 || w < 3 {
		for y := y0; y < y0+h; y++ {
			for x := x0; x < x0+w; x++ {
				g.put(x, y, '▪', hl)
			}
		}
		return
	}
	x1, y1 := x0+w-1, y0+h-1
	for x := x0 + 1; x < x1; x++ {
		g.put(x, y0, '─', hl)
		g.put(x, y1, '─', hl)
	}
	for y := y0 + 1; y < y1; y++ {
		g.put(x0, y, '│', hl)
		g.put(x1, y, '│', hl)
	}
	g.put(x0, y0, '╭', hl)
	g.put(x1, y0, '╮', hl)
	g.put(x0, y1, '╰', hl)
	g.put(x1, y1, '╯', hl)
}

// String renders the grid, styling runs of equal cells together.
func (g grid) String() string {
	var b strings.Builder
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].set == row[start].set && row[x].hl == row[start].hl {
				continue
			}
			b.WriteString(renderRun(row[start:x]))
			start = x
		}
	}
	return b.String()
}

func renderRun(run []cell) string {
	if len(run) == 0 {
		return ""
	}
	rs := make([]rune, len(run))
	for i, c := range run {
		rs[i] = c.r
		if !c.set {
			rs[i] = ' '
		}
	}
	s := string(rs)
	switch {
	case !run[0].set:
		return s
	case run[0].hl:
		return highlightStyle.Render(s)
	default:
		return idleStyle.Render(s)
	}
}

// plain returns the grid without styling.
func (g grid) plain() []string {
	lines := make([]string, len(g))
	for y, row := range g {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.r
			if !c.set {
				rs[x] = ' '
			}
		}
		lines[y] = string(rs)
	}
	return lines
}
