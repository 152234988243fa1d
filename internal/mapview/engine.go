// Package mapview wraps a map rendering engine and keeps one marker per
// listing with coordinates.
package mapview

import (
	"context"

	"stayfinder/internal/domain"
)

// TileLayer describes the base map tiles.
type TileLayer struct {
	URL         string
	Attribution string
	MaxZoom     int
}

// Popup is the content bound to a marker.
type Popup struct {
	Image string
	Title string
	Price string
}

// Engine is the map rendering capability. Implementations own the canvas,
// markers and viewport; the adapter only issues commands.
type Engine interface {
	AddTileLayer(layer TileLayer)
	AddMarker(pos domain.LatLng, pill string) Marker
	FitBounds(b domain.Bounds)
	SetView(center domain.LatLng, zoom float64)
	Viewport() domain.Viewport
	// OnViewportChange registers fn to run when the view settles after user panning or zooming.
	OnViewportChange(fn func(domain.Viewport))
	// InvalidateSize makes the engine re-measure its surface.
	InvalidateSize()
	Remove()
}

// Marker is one point on the map.
type Marker interface {
	Position() domain.LatLng
	SetEmphasis(on bool)
	BindPopup(p Popup)
	OpenPopup()
	OnClick(fn func())
	Remove()
}

// Loader provides an Engine once the map capability is available.
type Loader interface {
	Load(ctx context.Context) (Engine, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (Engine, error)

func (f LoaderFunc) Load(ctx context.Context) (Engine, error) {
	return f(ctx)
}
