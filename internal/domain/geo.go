package domain

// LatLng is a geographic point in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Bounds is a south-west / north-east rectangle.
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
	set   bool
}

// BoundsOf returns the smallest bounds containing every point.
func BoundsOf(points ...LatLng) Bounds {
	var b Bounds
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// Extend grows the bounds to contain p.
func (b Bounds) Extend(p LatLng) Bounds {
	if !b.set {
		return Bounds{South: p.Lat, North: p.Lat, West: p.Lng, East: p.Lng, set: true}
	}
	b.South = min(b.South, p.Lat)
	b.North = max(b.North, p.Lat)
	b.West = min(b.West, p.Lng)
	b.East = max(b.East, p.Lng)
	return b
}

// Empty reports whether no point was ever added.
func (b Bounds) Empty() bool {
	return !b.set
}

// Pad extends every side by ratio times the span on that axis.
func (b Bounds) Pad(ratio float64) Bounds {
	if !b.set {
		return b
	}
	dLat := (b.North - b.South) * ratio
	dLng := (b.East - b.West) * ratio
	return Bounds{
		South: b.South - dLat,
		North: b.North + dLat,
		West:  b.West - dLng,
		East:  b.East + dLng,
		set:   true,
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() LatLng {
	return LatLng{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p LatLng) bool {
	return b.set && p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

// Viewport describes what the map currently shows.
type Viewport struct {
	North  float64
	South  float64
	East   float64
	West   float64
	Center LatLng
	Zoom   float64
}
