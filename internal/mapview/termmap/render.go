package termmap

import (
	"math"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains the map canvas styles
type Styles struct {
	Background  lipgloss.Style
	Pill        lipgloss.Style
	Emphasized  lipgloss.Style
	Focused     lipgloss.Style
	Popup       lipgloss.Style
	Attribution lipgloss.Style
}

// NewStyles creates map styles with default colors
func NewStyles() *Styles {
	return &Styles{
		Background:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Pill:        lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("252")),
		Emphasized:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("205")).Bold(true),
		Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Underline(true),
		Popup:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Attribution: lipgloss.NewStyle().Faint(true).Italic(true),
	}
}

type cellKind int

const (
	cellBackground cellKind = iota
	cellPill
	cellEmphasized
	cellFocused
)

type cell struct {
	r    rune
	kind cellKind
}

// Render draws the canvas at its cached size followed by the open popup
// and the attribution line.
func (e *Engine) Render() string {
	if e.removed || e.width <= 0 || e.height <= 0 {
		return ""
	}

	grid := make([][]cell, e.height)
	for row := range grid {
		grid[row] = make([]cell, e.width)
		for col := range grid[row] {
			r := ' '
			if (col+2*row)%6 == 0 {
				r = '·'
			}
			grid[row][col] = cell{r: r}
		}
	}

	// emphasized pills are drawn after plain ones so they stay on top
	var plain, top []int
	for i, m := range e.markers {
		if m.emphasized {
			top = append(top, i)
		} else {
			plain = append(plain, i)
		}
	}
	for _, i := range append(plain, top...) {
		kind := cellPill
		if e.markers[i].emphasized {
			kind = cellEmphasized
		}
		e.drawPill(grid, e.markers[i], kind)
	}
	if e.focused >= 0 && e.focused < len(e.markers) {
		e.drawPill(grid, e.markers[e.focused], cellFocused)
	}

	var b strings.Builder
	for row, cells := range grid {
		if row > 0 {
			b.WriteByte('\n')
		}
		e.writeRow(&b, cells)
	}

	if e.open != nil {
		b.WriteByte('\n')
		b.WriteString(e.styles.Popup.Render(truncate(e.popupText(e.open), e.width)))
	}
	if e.tiles.Attribution != "" {
		b.WriteByte('\n')
		b.WriteString(e.styles.Attribution.Render(truncate(e.tiles.Attribution, e.width)))
	}
	return b.String()
}

// cellOf returns the canvas cell a position falls into.
func (e *Engine) cellOf(m *marker) (int, int) {
	c := project(e.center, e.zoom)
	p := project(m.pos, e.zoom)
	col := int(math.Floor((p.X-c.X)/cellWidth + float64(e.width)/2))
	row := int(math.Floor((p.Y-c.Y)/cellHeight + float64(e.height)/2))
	return col, row
}

func (e *Engine) drawPill(grid [][]cell, m *marker, kind cellKind) {
	col, row := e.cellOf(m)
	if row < 0 || row >= len(grid) {
		return
	}
	text := []rune(" " + m.pill + " ")
	start := col - len(text)/2
	for i, r := range text {
		c := start + i
		if c < 0 || c >= len(grid[row]) {
			continue
		}
		grid[row][c] = cell{r: r, kind: kind}
	}
}

func (e *Engine) writeRow(b *strings.Builder, cells []cell) {
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && cells[i].kind == cells[start].kind {
			continue
		}
		run := make([]rune, 0, i-start)
		for _, c := range cells[start:i] {
			run = append(run, c.r)
		}
		b.WriteString(e.styleFor(cells[start].kind).Render(string(run)))
		start = i
	}
}

func (e *Engine) styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case cellPill:
		return e.styles.Pill
	case cellEmphasized:
		return e.styles.Emphasized
	case cellFocused:
		return e.styles.Focused
	default:
		return e.styles.Background
	}
}

func (e *Engine) popupText(m *marker) string {
	parts := []string{"▸ " + m.popup.Title}
	if m.popup.Price != "" {
		parts = append(parts, m.popup.Price)
	}
	if m.popup.Image != "" {
		parts = append(parts, path.Base(m.popup.Image))
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:max(width, 0)])
	}
	return string(r[:width-1]) + "…"
}
