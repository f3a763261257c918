package geoplot

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BBox is a latitude/longitude rectangle that constrains the initial map
// viewport. Latitudes are in [-90, 90]; longitudes in [-180, 180] except for
// boxes that wrap past the antimeridian, such as BBoxWorld.
type BBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Predefined bounding boxes.
var (
	BBoxWorld = BBox{MinLat: -85, MaxLat: 85, MinLon: -170, MaxLon: 190}
	BBoxUSA   = BBox{MinLat: 22, MaxLat: 51, MinLon: -127, MaxLon: -66}
	BBoxDK    = BBox{MinLat: 54.444, MaxLat: 57.769, MinLon: 7.932, MaxLon: 13.282}
)

// NewBBox validates and returns a bounding box.
func NewBBox(minLat, maxLat, minLon, maxLon float64) (BBox, error) {
	b := BBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
	if err := b.validate("NewBBox"); err != nil {
		return BBox{}, err
	}
	return b, nil
}

func (b BBox) validate(op string) error {
	for _, v := range []float64{b.MinLat, b.MaxLat, b.MinLon, b.MaxLon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidArg(op, "bbox", b, "coordinates must be finite")
		}
	}
	if b.MinLat < -90 || b.MaxLat > 90 {
		return invalidArg(op, "bbox", b, "latitude must be within [-90, 90]")
	}
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return invalidArg(op, "bbox", b, "min must not exceed max")
	}
	return nil
}

// BBoxFromPoints returns the smallest box containing every (lat, lon) pair.
// It fails when the slices are empty or differ in length.
func BBoxFromPoints(lats, lons []float64) (BBox, error) {
	if len(lats) == 0 || len(lats) != len(lons) {
		return BBox{}, invalidArg("BBoxFromPoints", "points", len(lats), "need equal-length, non-empty lat/lon slices")
	}
	return BBox{
		MinLat: floats.Min(lats),
		MaxLat: floats.Max(lats),
		MinLon: floats.Min(lons),
		MaxLon: floats.Max(lons),
	}, nil
}

// Center returns the midpoint of the box.
func (b BBox) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// Contains reports whether (lat, lon) lies inside the box, edges included.
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinLat: math.Min(b.MinLat, o.MinLat),
		MaxLat: math.Max(b.MaxLat, o.MaxLat),
		MinLon: math.Min(b.MinLon, o.MinLon),
		MaxLon: math.Max(b.MaxLon, o.MaxLon),
	}
}
