package geoplot

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Layer is an immutable descriptor of one visual element and its drawing
// parameters. The set of implementations is closed: the viewer interprets
// layers by switching on Kind, and the descriptors themselves never draw.
//
// Build layers with the NewXxxLayer constructors or the matching Session
// methods, which also append them to the session.
type Layer interface {
	Kind() LayerKind
	isLayer()
}

// Tooltip returns the tooltip text for one data row, keyed by column name.
// An empty string suppresses the tooltip.
type Tooltip func(row map[string]float64) string

// ShapeTooltip returns the tooltip text for one shapefile record.
type ShapeTooltip func(attributes map[string]string) string

// GroupFunc reduces the rows that fall into one histogram bin to a value.
type GroupFunc func(d *Data, rows []int) float64

// DrawFunc draws a custom layer onto the screen.
type DrawFunc func(screen *ebiten.Image, view *View)

// dataLayer is embedded by every descriptor built from a Data.
type dataLayer struct {
	data *Data
}

// Data returns the data access object the layer was built from.
func (l *dataLayer) Data() *Data {
	return l.data
}

func (l *dataLayer) isLayer() {}

// CustomLayer draws through a caller-supplied callback.
type CustomLayer struct {
	name string
	draw DrawFunc
}

// NewCustomLayer wraps draw as a layer.
func NewCustomLayer(name string, draw DrawFunc) (*CustomLayer, error) {
	if draw == nil {
		return nil, invalidArg("NewCustomLayer", "draw", nil, "must not be nil")
	}
	return &CustomLayer{name: name, draw: draw}, nil
}

// Kind implements Layer.
func (l *CustomLayer) Kind() LayerKind { return LayerCustom }

// Name returns the layer name.
func (l *CustomLayer) Name() string { return l.name }

// Draw invokes the callback.
func (l *CustomLayer) Draw(screen *ebiten.Image, view *View) { l.draw(screen, view) }

func (l *CustomLayer) isLayer() {}

func validateAlpha(op string, alpha int) error {
	if alpha < 0 || alpha > 255 {
		return invalidArg(op, "alpha", alpha, "must be within [0, 255]")
	}
	return nil
}

func validatePositive(op, arg string, v float64) error {
	if !(v > 0) {
		return invalidArg(op, arg, v, "must be positive")
	}
	return nil
}

func validateCmap(op, arg, name string, optional bool) error {
	if optional && name == "" {
		return nil
	}
	if !knownColormap(name) {
		return invalidArg(op, arg, name, "unknown colormap")
	}
	return nil
}

// pickConfig returns the single optional config or def.
func pickConfig[T any](op string, cfg []T, def T) (T, error) {
	switch len(cfg) {
	case 0:
		return def, nil
	case 1:
		return cfg[0], nil
	}
	var zero T
	return zero, invalidArg(op, "config", len(cfg), "at most one config may be given")
}

// layerBBox returns the lat/lon extent of the data behind l, if any.
func layerBBox(l Layer) (BBox, bool) {
	var d *Data
	switch v := l.(type) {
	case *ScatterLayer:
		d = v.data
	case *HistogramLayer:
		d = v.data
	case *VoronoiLayer:
		d = v.data
	case *DelaunayLayer:
		d = v.data
	case *ConvexHullLayer:
		d = v.data
	case *KDELayer:
		d = v.data
	case *MarkersLayer:
		d = v.data
	case *GraphLayer:
		src, err1 := BBoxFromPoints(v.data.Column(v.srcLat), v.data.Column(v.srcLon))
		dst, err2 := BBoxFromPoints(v.data.Column(v.destLat), v.data.Column(v.destLon))
		if err1 != nil || err2 != nil {
			return BBox{}, false
		}
		return src.Union(dst), true
	}
	if d == nil || d.Len() == 0 {
		return BBox{}, false
	}
	b, err := d.BBox()
	return b, err == nil
}
