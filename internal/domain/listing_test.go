package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingPositionFromJSON(t *testing.T) {
	var listings []Listing
	err := json.Unmarshal([]byte(`[
		{"id":"zero","lat":0,"lng":0},
		{"id":"bad","lat":"bad","lng":12.5},
		{"id":"missing","title":"no coords"},
		{"id":"null","lat":null,"lng":null},
		{"id":"ok","lat":38.72,"lng":-9.14}
	]`), &listings)
	require.NoError(t, err)
	require.Len(t, listings, 5)

	pos, ok := listings[0].Position()
	assert.True(t, ok, "0,0 is a valid position")
	assert.Equal(t, LatLng{}, pos)

	_, ok = listings[1].Position()
	assert.False(t, ok)
	assert.True(t, listings[1].Lng.Valid, "the valid half still decodes")

	_, ok = listings[2].Position()
	assert.False(t, ok)
	_, ok = listings[3].Position()
	assert.False(t, ok)

	pos, ok = listings[4].Position()
	require.True(t, ok)
	assert.InDelta(t, 38.72, pos.Lat, 1e-9)
	assert.InDelta(t, -9.14, pos.Lng, 1e-9)
}

func TestPriceDecodingAndValue(t *testing.T) {
	var listings []Listing
	err := json.Unmarshal([]byte(`[
		{"id":"a","price":120},
		{"id":"b","price":"$1,250"},
		{"id":"c","price":"call us"},
		{"id":"d"},
		{"id":"e","price":true}
	]`), &listings)
	require.NoError(t, err)

	assert.True(t, listings[0].Price.Number)
	assert.Equal(t, 120.0, listings[0].Price.Value())
	assert.Equal(t, "$1,250", listings[1].Price.Text)
	assert.Equal(t, 1250.0, listings[1].Price.Value())
	assert.Equal(t, 0.0, listings[2].Price.Value())
	assert.True(t, listings[3].Price.Missing())
	assert.Equal(t, 0.0, listings[3].Price.Value())
	assert.True(t, listings[4].Price.Missing())
}

func TestListingJSONRoundTripKeepsShape(t *testing.T) {
	in := Listing{ID: "x", Title: "Loft", Price: Text("€90"), Lat: Num(1.5), Images: []string{"a.jpg"}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":"€90"`)
	assert.Contains(t, string(data), `"lng":null`)

	var out Listing
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestBoundsPad(t *testing.T) {
	b := BoundsOf(LatLng{Lat: 10, Lng: 20}, LatLng{Lat: 20, Lng: 40})
	p := b.Pad(0.1)
	assert.InDelta(t, 9, p.South, 1e-9)
	assert.InDelta(t, 21, p.North, 1e-9)
	assert.InDelta(t, 18, p.West, 1e-9)
	assert.InDelta(t, 42, p.East, 1e-9)
	assert.Equal(t, LatLng{Lat: 15, Lng: 30}, b.Center())
	assert.True(t, BoundsOf().Empty())
	assert.True(t, BoundsOf().Pad(0.1).Empty())
}
