package geoplot

import "math"

// maxMercatorLat is the latitude at which the Web Mercator world becomes square.
const maxMercatorLat = 85.0511287798

// mercator projects lat/lon in degrees to world coordinates (Web Mercator
// pixels at zoom 0). Latitudes beyond ±85.0511 are clamped.
func mercator(lat, lon float64) (x, y float64) {
	lat = math.Max(-maxMercatorLat, math.Min(lat, maxMercatorLat))
	latRad := lat * math.Pi / 180
	x = (lon + 180) / 360 * TileSize
	y = (1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * TileSize
	return x, y
}

// inverseMercator is the inverse of mercator.
func inverseMercator(x, y float64) (lat, lon float64) {
	lon = x/TileSize*360 - 180
	lat = math.Atan(math.Sinh(math.Pi*(1-2*y/TileSize))) * 180 / math.Pi
	return lat, lon
}

// bboxWorldRect returns the world-space rectangle covering b.
func bboxWorldRect(b BBox) Rect {
	x0, y0 := mercator(b.MaxLat, b.MinLon)
	x1, y1 := mercator(b.MinLat, b.MaxLon)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// View is the read-only projection state handed to layer painters and custom
// layer callbacks for the frame being drawn.
type View struct {
	cam *Camera
}

// LatLonToScreen projects a coordinate to screen pixels.
func (v *View) LatLonToScreen(lat, lon float64) (x, y float64) {
	wx, wy := mercator(lat, lon)
	return v.cam.WorldToScreen(wx, wy)
}

// ScreenToLatLon converts a screen position to a coordinate.
func (v *View) ScreenToLatLon(x, y float64) (lat, lon float64) {
	wx, wy := v.cam.ScreenToWorld(x, y)
	return inverseMercator(wx, wy)
}

// Project converts parallel lat/lon columns to screen coordinates.
func (v *View) Project(lats, lons []float64) (xs, ys []float64) {
	n := min(len(lats), len(lons))
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range n {
		xs[i], ys[i] = v.LatLonToScreen(lats[i], lons[i])
	}
	return xs, ys
}

// Zoom returns the number of screen pixels per world pixel.
func (v *View) Zoom() float64 { return v.cam.Zoom }

// TileZoom returns the basemap zoom level being displayed.
func (v *View) TileZoom() int { return v.cam.TileZoom() }

// Size returns the viewport size in pixels.
func (v *View) Size() (w, h float64) {
	return v.cam.Viewport.Width, v.cam.Viewport.Height
}

// Bounds returns the coordinate box currently visible, clamped to the
// projectable world.
func (v *View) Bounds() BBox {
	r := v.cam.VisibleBounds()
	x0 := math.Max(r.X, 0)
	y0 := math.Max(r.Y, 0)
	x1 := math.Min(r.X+r.Width, TileSize)
	y1 := math.Min(r.Y+r.Height, TileSize)
	maxLat, minLon := inverseMercator(x0, y0)
	minLat, maxLon := inverseMercator(x1, y1)
	return BBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
}
