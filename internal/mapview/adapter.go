package mapview

import (
	"stayfinder/internal/domain"
	"stayfinder/internal/format"
)

// FitPadding is the fraction of the marker span added on every side when fitting.
const FitPadding = 0.1

type placed struct {
	id     string
	marker Marker
}

// Adapter places listing markers on an Engine. The id to marker table is
// one-directional: markers never act as a source of listing data.
// Every operation is a no-op while no engine is attached.
type Adapter struct {
	engine   Engine
	currency string
	markers  []placed
	byID     map[string]Marker
	onClick  func(id string)
	onView   func(domain.Viewport)
	tornDown bool
}

// NewAdapter creates an adapter without an engine.
func NewAdapter(currency string) *Adapter {
	return &Adapter{currency: currency, byID: make(map[string]Marker)}
}

// Attach binds the engine, adds the tile layer and sets the initial view.
func (a *Adapter) Attach(engine Engine, tiles TileLayer, center domain.LatLng, zoom float64) {
	if a.tornDown || engine == nil {
		return
	}
	a.engine = engine
	engine.AddTileLayer(tiles)
	engine.SetView(center, zoom)
	engine.OnViewportChange(func(v domain.Viewport) {
		if a.onView != nil {
			a.onView(v)
		}
	})
}

// Ready reports whether an engine is attached.
func (a *Adapter) Ready() bool {
	return a.engine != nil
}

// OnMarkerClick sets the handler invoked with the listing id of a clicked marker.
func (a *Adapter) OnMarkerClick(fn func(id string)) {
	a.onClick = fn
}

// OnViewportChange sets the handler for settled viewport changes.
func (a *Adapter) OnViewportChange(fn func(domain.Viewport)) {
	a.onView = fn
}

// Place discards every marker and creates one per listing with valid coordinates.
func (a *Adapter) Place(listings []domain.Listing) {
	if a.engine == nil {
		return
	}
	a.clear()

	for _, l := range listings {
		pos, ok := l.Position()
		if !ok {
			continue
		}
		m := a.engine.AddMarker(pos, format.Pill(l.Price, a.currency))
		popup := Popup{Title: l.Title, Price: format.PriceLine(l, a.currency)}
		if len(l.Images) > 0 {
			popup.Image = l.Images[0]
		}
		m.BindPopup(popup)
		a.markers = append(a.markers, placed{id: l.ID, marker: m})

		// listings without an id cannot be resolved back from a click
		if l.ID == "" {
			continue
		}
		if _, dup := a.byID[l.ID]; dup {
			continue
		}
		a.byID[l.ID] = m
		id := l.ID
		m.OnClick(func() {
			m.OpenPopup()
			if a.onClick != nil {
				a.onClick(id)
			}
		})
	}
}

// FitToMarkers fits the view to every marker. No markers leaves the view unchanged.
func (a *Adapter) FitToMarkers() {
	if a.engine == nil || len(a.markers) == 0 {
		return
	}
	var b domain.Bounds
	for _, p := range a.markers {
		b = b.Extend(p.marker.Position())
	}
	a.engine.FitBounds(b.Pad(FitPadding))
}

// PanTo centers the view on the marker for id at the current zoom and opens its popup.
func (a *Adapter) PanTo(id string) bool {
	if a.engine == nil {
		return false
	}
	m, ok := a.byID[id]
	if !ok {
		return false
	}
	a.engine.SetView(m.Position(), a.engine.Viewport().Zoom)
	m.OpenPopup()
	return true
}

// SetHighlighted toggles the emphasized pill of the marker for id.
func (a *Adapter) SetHighlighted(id string, on bool) {
	if a.engine == nil {
		return
	}
	if m, ok := a.byID[id]; ok {
		m.SetEmphasis(on)
	}
}

// Resize asks the engine to re-measure its surface. Calling it any number
// of times, including after Teardown, is harmless.
func (a *Adapter) Resize() {
	if a.engine == nil {
		return
	}
	a.engine.InvalidateSize()
}

// Teardown removes every marker and releases the engine. The adapter stays inert afterwards.
func (a *Adapter) Teardown() {
	a.tornDown = true
	if a.engine == nil {
		return
	}
	a.clear()
	a.engine.Remove()
	a.engine = nil
}

// MarkerCount returns the number of placed markers.
func (a *Adapter) MarkerCount() int {
	return len(a.markers)
}

// HasMarker reports whether id has a clickable marker.
func (a *Adapter) HasMarker(id string) bool {
	_, ok := a.byID[id]
	return ok
}

// Viewport returns the engine's current view.
func (a *Adapter) Viewport() (domain.Viewport, bool) {
	if a.engine == nil {
		return domain.Viewport{}, false
	}
	return a.engine.Viewport(), true
}

func (a *Adapter) clear() {
	for _, p := range a.markers {
		p.marker.Remove()
	}
	a.markers = nil
	a.byID = make(map[string]Marker)
}
