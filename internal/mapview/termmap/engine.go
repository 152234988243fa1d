// Package termmap is a map engine that draws markers on a character canvas.
package termmap

import (
	"math"

	"stayfinder/internal/domain"
	"stayfinder/internal/mapview"
)

const (
	defaultMaxZoom = 18
	minZoom        = 1
)

// Surface is the panel the map draws into.
type Surface interface {
	Size() (width, height int)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func() (int, int)

func (f SurfaceFunc) Size() (int, int) { return f() }

// Engine implements mapview.Engine for terminals. The canvas size is read
// from the surface on creation and only refreshed by InvalidateSize.
type Engine struct {
	surface   Surface
	width     int
	height    int
	center    domain.LatLng
	zoom      float64
	tiles     mapview.TileLayer
	markers   []*marker
	focused   int
	open      *marker
	listeners []func(domain.Viewport)
	removed   bool
	styles    *Styles
}

// New creates an engine drawing into surface.
func New(surface Surface) *Engine {
	e := &Engine{
		surface: surface,
		zoom:    minZoom,
		focused: -1,
		styles:  NewStyles(),
		tiles:   mapview.TileLayer{MaxZoom: defaultMaxZoom},
	}
	e.measure()
	return e
}

func (e *Engine) AddTileLayer(layer mapview.TileLayer) {
	if layer.MaxZoom <= 0 {
		layer.MaxZoom = defaultMaxZoom
	}
	e.tiles = layer
	e.zoom = e.clampZoom(e.zoom)
}

func (e *Engine) AddMarker(pos domain.LatLng, pill string) mapview.Marker {
	m := &marker{engine: e, pos: pos, pill: pill}
	if !e.removed {
		e.markers = append(e.markers, m)
	}
	return m
}

// FitBounds centers on b and picks the largest whole zoom that shows all of it.
func (e *Engine) FitBounds(b domain.Bounds) {
	if e.removed || b.Empty() {
		return
	}
	e.center = b.Center()
	if e.width <= 0 || e.height <= 0 {
		return
	}
	zoom := float64(e.tiles.MaxZoom)
	for ; zoom > minZoom; zoom-- {
		sw := project(domain.LatLng{Lat: b.South, Lng: b.West}, zoom)
		ne := project(domain.LatLng{Lat: b.North, Lng: b.East}, zoom)
		if ne.X-sw.X <= float64(e.width)*cellWidth && sw.Y-ne.Y <= float64(e.height)*cellHeight {
			break
		}
	}
	e.zoom = zoom
}

func (e *Engine) SetView(center domain.LatLng, zoom float64) {
	if e.removed {
		return
	}
	e.center = center
	e.zoom = e.clampZoom(zoom)
}

func (e *Engine) Viewport() domain.Viewport {
	c := project(e.center, e.zoom)
	halfW := float64(e.width) * cellWidth / 2
	halfH := float64(e.height) * cellHeight / 2
	nw := unproject(point{X: c.X - halfW, Y: c.Y - halfH}, e.zoom)
	se := unproject(point{X: c.X + halfW, Y: c.Y + halfH}, e.zoom)
	return domain.Viewport{
		North:  nw.Lat,
		South:  se.Lat,
		West:   nw.Lng,
		East:   se.Lng,
		Center: e.center,
		Zoom:   e.zoom,
	}
}

func (e *Engine) OnViewportChange(fn func(domain.Viewport)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) InvalidateSize() {
	if e.removed {
		return
	}
	e.measure()
}

func (e *Engine) Remove() {
	e.removed = true
	e.markers = nil
	e.open = nil
	e.focused = -1
	e.listeners = nil
}

// Size returns the cached canvas size in cells.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// Attribution returns the tile layer attribution.
func (e *Engine) Attribution() string {
	return e.tiles.Attribution
}

// Pan moves the view by whole cells and reports the settled viewport.
func (e *Engine) Pan(dx, dy int) {
	if e.removed {
		return
	}
	c := project(e.center, e.zoom)
	c.X += float64(dx) * cellWidth
	c.Y += float64(dy) * cellHeight
	e.center = unproject(c, e.zoom)
	e.settled()
}

// ZoomBy changes the zoom level and reports the settled viewport.
func (e *Engine) ZoomBy(delta float64) {
	if e.removed {
		return
	}
	zoom := e.clampZoom(e.zoom + delta)
	if zoom == e.zoom {
		return
	}
	e.zoom = zoom
	e.settled()
}

// CycleMarker moves keyboard focus to the next (dir > 0) or previous marker.
func (e *Engine) CycleMarker(dir int) {
	n := len(e.markers)
	if n == 0 {
		e.focused = -1
		return
	}
	if e.focused < 0 {
		if dir < 0 {
			e.focused = n - 1
		} else {
			e.focused = 0
		}
		return
	}
	e.focused = ((e.focused+dir)%n + n) % n
}

// ClickFocused clicks the focused marker.
func (e *Engine) ClickFocused() bool {
	if e.focused < 0 || e.focused >= len(e.markers) {
		return false
	}
	m := e.markers[e.focused]
	if m.click == nil {
		return false
	}
	m.click()
	return true
}

// MarkerCount returns the number of markers on the canvas.
func (e *Engine) MarkerCount() int {
	return len(e.markers)
}

func (e *Engine) measure() {
	if e.surface == nil {
		return
	}
	e.width, e.height = e.surface.Size()
}

func (e *Engine) clampZoom(z float64) float64 {
	return math.Max(minZoom, math.Min(float64(e.tiles.MaxZoom), z))
}

func (e *Engine) settled() {
	v := e.Viewport()
	for _, fn := range e.listeners {
		fn(v)
	}
}

func (e *Engine) removeMarker(m *marker) {
	for i, other := range e.markers {
		if other == m {
			e.markers = append(e.markers[:i], e.markers[i+1:]...)
			switch {
			case e.focused == i:
				e.focused = -1
			case e.focused > i:
				e.focused--
			}
			break
		}
	}
	if e.open == m {
		e.open = nil
	}
}
