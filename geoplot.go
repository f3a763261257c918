package geoplot

import "fmt"

// Color is a straight-alpha RGBA color with 8-bit components. It implements
// color.Color, so it can be passed directly to ebiten and vector helpers.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color. The returned components are premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff
	r |= r << 8
	g |= g << 8
	b |= b << 8
	a |= a << 8
	return
}

// String formats the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Commonly used colors.
var (
	ColorWhite = Color{255, 255, 255, 255}
	ColorBlack = Color{0, 0, 0, 255}
	ColorRed   = Color{255, 0, 0, 255}
)

// autoColor is the point color used when a layer leaves its color unset.
var autoColor = Color{255, 0, 0, 255}

// Vec2 is a 2D vector, usually a screen position in pixels.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// LayerKind identifies the variant of a Layer descriptor.
type LayerKind uint8

const (
	LayerScatter    LayerKind = iota // points
	LayerHistogram                   // 2D screen-space histogram
	LayerGraph                       // edges between coordinate pairs
	LayerShapefile                   // polygons loaded from a shapefile
	LayerVoronoi                     // voronoi tessellation of points
	LayerDelaunay                    // delaunay triangulation of points
	LayerConvexHull                  // convex hull polygon of points
	LayerKDE                         // kernel density surface
	LayerMarkers                     // image markers at points
	LayerCustom                      // caller-supplied draw callback
)

var layerKindNames = [...]string{
	LayerScatter:    "scatter",
	LayerHistogram:  "hist",
	LayerGraph:      "graph",
	LayerShapefile:  "shapefiles",
	LayerVoronoi:    "voronoi",
	LayerDelaunay:   "delaunay",
	LayerConvexHull: "convexhull",
	LayerKDE:        "kde",
	LayerMarkers:    "markers",
	LayerCustom:     "custom",
}

func (k LayerKind) String() string {
	if int(k) < len(layerKindNames) {
		return layerKindNames[k]
	}
	return fmt.Sprintf("LayerKind(%d)", k)
}

// ColorScale selects how values are mapped onto a colormap.
type ColorScale uint8

const (
	ScaleSqrt ColorScale = iota // square root (default)
	ScaleLin                    // linear
	ScaleLog                    // logarithmic
)

func (s ColorScale) String() string {
	switch s {
	case ScaleSqrt:
		return "sqrt"
	case ScaleLin:
		return "lin"
	case ScaleLog:
		return "log"
	default:
		return fmt.Sprintf("ColorScale(%d)", s)
	}
}

func (s ColorScale) valid() bool {
	return s <= ScaleLog
}

// ParseColorScale converts "lin", "log" or "sqrt" into a ColorScale.
func ParseColorScale(s string) (ColorScale, error) {
	switch s {
	case "sqrt":
		return ScaleSqrt, nil
	case "lin":
		return ScaleLin, nil
	case "log":
		return ScaleLog, nil
	}
	return 0, invalidArg("ParseColorScale", "scale", s, "must be one of lin, log, sqrt")
}

// KDEMethod selects the density estimator of a KDE layer.
type KDEMethod uint8

const (
	KDEHist  KDEMethod = iota // gaussian smoothing of a 2D histogram (default)
	KDEExact                  // per-point kernel evaluation; slower and more accurate
)

func (m KDEMethod) String() string {
	switch m {
	case KDEHist:
		return "hist"
	case KDEExact:
		return "kde"
	default:
		return fmt.Sprintf("KDEMethod(%d)", m)
	}
}

// ShapeType selects how shapefile records are drawn.
type ShapeType uint8

const (
	ShapeFull ShapeType = iota // full polygon outlines (default)
	ShapeBBox                  // record bounding boxes only
)

func (t ShapeType) String() string {
	switch t {
	case ShapeFull:
		return "full"
	case ShapeBBox:
		return "bbox"
	default:
		return fmt.Sprintf("ShapeType(%d)", t)
	}
}
