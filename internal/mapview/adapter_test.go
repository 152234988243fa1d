package mapview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfinder/internal/domain"
	"stayfinder/internal/mapview"
	"stayfinder/internal/mapview/maptest"
)

func attached(t *testing.T) (*mapview.Adapter, *maptest.Engine) {
	t.Helper()
	a := mapview.NewAdapter("$")
	e := maptest.New()
	a.Attach(e, mapview.TileLayer{URL: "https://tiles/{z}/{x}/{y}.png", MaxZoom: 19}, domain.LatLng{Lat: 1, Lng: 2}, 12)
	return a, e
}

func sample() []domain.Listing {
	return []domain.Listing{
		{ID: "zero", Title: "Null island", Price: domain.Amount(90), Lat: domain.Num(0), Lng: domain.Num(0), Images: []string{"a.jpg"}},
		{ID: "bad", Lat: domain.Coord{}, Lng: domain.Num(3)},
		{ID: "far", Price: domain.Amount(1500), Lat: domain.Num(10), Lng: domain.Num(20)},
		{ID: "", Lat: domain.Num(5), Lng: domain.Num(5)},
	}
}

func TestAttachSetsTilesAndView(t *testing.T) {
	_, e := attached(t)
	require.Len(t, e.Tiles, 1)
	assert.Equal(t, 19, e.Tiles[0].MaxZoom)
	assert.Equal(t, domain.LatLng{Lat: 1, Lng: 2}, e.View.Center)
	assert.Equal(t, 12.0, e.View.Zoom)
}

func TestPlaceSkipsInvalidCoordinates(t *testing.T) {
	a, e := attached(t)
	a.Place(sample())

	assert.Equal(t, 3, a.MarkerCount())
	assert.True(t, a.HasMarker("zero"), "0,0 is a valid position")
	assert.False(t, a.HasMarker("bad"))
	assert.True(t, a.HasMarker("far"))

	zero := e.MarkerAt(domain.LatLng{})
	require.NotNil(t, zero)
	assert.Equal(t, "$90", zero.Pill)
	assert.Equal(t, mapview.Popup{Image: "a.jpg", Title: "Null island", Price: "$90"}, zero.Popup)

	anon := e.MarkerAt(domain.LatLng{Lat: 5, Lng: 5})
	require.NotNil(t, anon)
	assert.False(t, anon.Clickable(), "a marker without id cannot click back")
}

func TestPlaceReplacesAllMarkers(t *testing.T) {
	a, e := attached(t)
	a.Place(sample())
	first := e.Markers()

	a.Place(sample()[:1])
	assert.Equal(t, 1, a.MarkerCount())
	assert.Len(t, e.Markers(), 1)
	for _, m := range first {
		assert.False(t, e.Live[m], "old markers are removed")
	}

	a.Place(nil)
	assert.Equal(t, 0, a.MarkerCount())
	assert.Empty(t, e.Markers())
}

func TestMarkerClickReportsID(t *testing.T) {
	a, e := attached(t)
	var clicked []string
	a.OnMarkerClick(func(id string) { clicked = append(clicked, id) })
	a.Place(sample())

	far := e.MarkerAt(domain.LatLng{Lat: 10, Lng: 20})
	far.Click()
	assert.Equal(t, []string{"far"}, clicked)
	assert.True(t, far.PopupOpen, "clicking a marker opens its popup")
}

func TestFitToMarkersPads(t *testing.T) {
	a, e := attached(t)
	a.Place(sample())
	a.FitToMarkers()

	require.Len(t, e.Fitted, 1)
	b := e.Fitted[0]
	assert.InDelta(t, -1, b.South, 1e-9)
	assert.InDelta(t, 11, b.North, 1e-9)
	assert.InDelta(t, -2, b.West, 1e-9)
	assert.InDelta(t, 22, b.East, 1e-9)
}

func TestFitToZeroMarkersKeepsView(t *testing.T) {
	a, e := attached(t)
	a.Place(nil)
	before := e.View
	a.FitToMarkers()
	assert.Empty(t, e.Fitted)
	assert.Equal(t, before, e.View)
}

func TestPanToKeepsZoomAndOpensPopup(t *testing.T) {
	a, e := attached(t)
	a.Place(sample())
	e.View.Zoom = 9

	require.True(t, a.PanTo("far"))
	assert.Equal(t, domain.LatLng{Lat: 10, Lng: 20}, e.View.Center)
	assert.Equal(t, 9.0, e.View.Zoom)
	assert.True(t, e.MarkerAt(domain.LatLng{Lat: 10, Lng: 20}).PopupOpen)

	center := e.View.Center
	assert.False(t, a.PanTo("bad"))
	assert.False(t, a.PanTo("missing"))
	assert.Equal(t, center, e.View.Center)
}

func TestSetHighlighted(t *testing.T) {
	a, e := attached(t)
	a.Place(sample())

	a.SetHighlighted("far", true)
	assert.True(t, e.MarkerAt(domain.LatLng{Lat: 10, Lng: 20}).Emphasized)
	a.SetHighlighted("far", false)
	assert.False(t, e.MarkerAt(domain.LatLng{Lat: 10, Lng: 20}).Emphasized)
	assert.NotPanics(t, func() { a.SetHighlighted("bad", true) })
}

func TestViewportChangeIsForwarded(t *testing.T) {
	a, e := attached(t)
	var got []domain.Viewport
	a.OnViewportChange(func(v domain.Viewport) { got = append(got, v) })

	v := domain.Viewport{North: 2, South: 1, East: 4, West: 3, Center: domain.LatLng{Lat: 1.5, Lng: 3.5}, Zoom: 7}
	e.UserMoved(v)
	assert.Equal(t, []domain.Viewport{v}, got)
}

func TestInertWithoutEngine(t *testing.T) {
	a := mapview.NewAdapter("$")
	assert.False(t, a.Ready())
	assert.NotPanics(t, func() {
		a.Place(sample())
		a.FitToMarkers()
		a.SetHighlighted("zero", true)
		a.Resize()
		a.Teardown()
	})
	assert.False(t, a.PanTo("zero"))
	assert.Equal(t, 0, a.MarkerCount())
}

func TestTeardownReleasesEverything(t *testing.T) {
	a, e := attached(t)
	a.Place(sample())

	a.Teardown()
	assert.True(t, e.Removed)
	assert.Empty(t, e.Markers())
	assert.False(t, a.Ready())

	resizes := e.Resizes
	a.Resize()
	assert.Equal(t, resizes, e.Resizes, "resize after teardown is a no-op")

	a.Attach(maptest.New(), mapview.TileLayer{}, domain.LatLng{}, 1)
	assert.False(t, a.Ready(), "a torn down adapter cannot be re-attached")
}
