// Package maptest provides a recording map engine for tests.
package maptest

import (
	"stayfinder/internal/domain"
	"stayfinder/internal/mapview"
)

// Engine records every call made by the adapter.
type Engine struct {
	Tiles       []mapview.TileLayer
	View        domain.Viewport
	Fitted      []domain.Bounds
	Resizes     int
	Removed     bool
	Live        map[*Marker]bool
	Created     []*Marker
	viewChanged []func(domain.Viewport)
}

// New creates an empty recording engine.
func New() *Engine {
	return &Engine{Live: make(map[*Marker]bool)}
}

func (e *Engine) AddTileLayer(layer mapview.TileLayer) {
	e.Tiles = append(e.Tiles, layer)
}

func (e *Engine) AddMarker(pos domain.LatLng, pill string) mapview.Marker {
	m := &Marker{engine: e, Pos: pos, Pill: pill}
	e.Live[m] = true
	e.Created = append(e.Created, m)
	return m
}

func (e *Engine) FitBounds(b domain.Bounds) {
	e.Fitted = append(e.Fitted, b)
	e.View.South, e.View.North, e.View.West, e.View.East = b.South, b.North, b.West, b.East
	e.View.Center = b.Center()
}

func (e *Engine) SetView(center domain.LatLng, zoom float64) {
	e.View.Center = center
	e.View.Zoom = zoom
}

func (e *Engine) Viewport() domain.Viewport {
	return e.View
}

func (e *Engine) OnViewportChange(fn func(domain.Viewport)) {
	e.viewChanged = append(e.viewChanged, fn)
}

// UserMoved simulates the user settling the map on v.
func (e *Engine) UserMoved(v domain.Viewport) {
	e.View = v
	for _, fn := range e.viewChanged {
		fn(v)
	}
}

func (e *Engine) InvalidateSize() {
	e.Resizes++
}

func (e *Engine) Remove() {
	e.Removed = true
}

// Markers returns the markers currently on the map.
func (e *Engine) Markers() []*Marker {
	var out []*Marker
	for _, m := range e.Created {
		if e.Live[m] {
			out = append(out, m)
		}
	}
	return out
}

// MarkerAt returns the live marker at pos.
func (e *Engine) MarkerAt(pos domain.LatLng) *Marker {
	for _, m := range e.Markers() {
		if m.Pos == pos {
			return m
		}
	}
	return nil
}

// Marker is a recorded marker.
type Marker struct {
	engine     *Engine
	Pos        domain.LatLng
	Pill       string
	Emphasized bool
	Popup      mapview.Popup
	PopupOpen  bool
	click      func()
}

func (m *Marker) Position() domain.LatLng { return m.Pos }
func (m *Marker) SetEmphasis(on bool) { m.Emphasized = on }
func (m *Marker) BindPopup(p mapview.Popup) { m.Popup = p }
func (m *Marker) OpenPopup() { m.PopupOpen = true }
func (m *Marker) OnClick(fn func()) { m.click = fn }
func (m *Marker) Remove() { delete(m.engine.Live, m) }

// Click simulates a user click.
func (m *Marker) Click() {
	if m.click != nil {
		m.click()
	}
}

// Clickable reports whether a click handler is bound.
func (m *Marker) Clickable() bool {
	return m.click != nil
}
