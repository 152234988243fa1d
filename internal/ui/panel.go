package ui

import (
	"sync"

	"stayfinder/internal/cards"
)

// listPanel is the container the widget mounts into. Classes drive the
// layout in View and the scroll position is kept in grid rows.
type listPanel struct {
	classes map[string]bool
	columns int
	topRow  int
	rows    int // rows that fit on screen, measured on every render
	cleared bool
}

func newListPanel(columns int) *listPanel {
	return &listPanel{
		classes: make(map[string]bool),
		columns: max(columns, 1),
		rows:    1,
	}
}

func (p *listPanel) SetClass(name string, on bool) {
	if on {
		p.classes[name] = true
		return
	}
	delete(p.classes, name)
}

func (p *listPanel) HasClass(name string) bool {
	return p.classes[name]
}

func (p *listPanel) Clear() {
	p.cleared = true
	p.topRow = 0
}

func (p *listPanel) ScrollToTop() {
	p.topRow = 0
}

func (p *listPanel) ScrollIntoView(index int) {
	row := cards.RowOf(index, p.columns)
	switch {
	case row < p.topRow:
		p.topRow = row
	case row >= p.topRow+p.rows:
		p.topRow = row - p.rows + 1
	}
}

// mapSurface is the size of the map canvas. The deferred loader reads it
// from a command goroutine, so access is locked.
type mapSurface struct {
	mu     sync.RWMutex
	width  int
	height int
}

func (s *mapSurface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

func (s *mapSurface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = max(width, 0), max(height, 0)
}
