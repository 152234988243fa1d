package termmap

import (
	"math"

	"stayfinder/internal/domain"
)

const (
	tileSize = 256.0
	// a terminal cell is roughly twice as tall as it is wide
	cellWidth  = 8.0
	cellHeight = 16.0
	maxLat     = 85.0511287798
)

type point struct {
	X float64
	Y float64
}

// project converts a position to world pixel coordinates at zoom.
func project(p domain.LatLng, zoom float64) point {
	size := tileSize * math.Exp2(zoom)
	lat := math.Max(-maxLat, math.Min(maxLat, p.Lat)) * math.Pi / 180
	x := (p.Lng + 180) / 360 * size
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * size
	return point{X: x, Y: y}
}

// unproject is the inverse of project.
func unproject(pt point, zoom float64) domain.LatLng {
	size := tileSize * math.Exp2(zoom)
	lng := pt.X/size*360 - 180
	n := math.Pi - 2*math.Pi*pt.Y/size
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return domain.LatLng{Lat: lat, Lng: lng}
}
