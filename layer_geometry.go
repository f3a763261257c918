package geoplot

import (
	"os"
)

// --- Graph ---

// GraphConfig holds the optional parameters of a graph layer.
// Start from DefaultGraphConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type GraphConfig struct {
	LineWidth float64
	Alpha     int
	// Color is a colormap name, which colors edges by length, or a fixed
	// "#rrggbb" color.
	Color string
}

// DefaultGraphConfig returns line width 1, alpha 220 and the "hot" colormap.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{LineWidth: 1, Alpha: 220, Color: "hot"}
}

// GraphLayer draws a line between each source and destination coordinate.
type GraphLayer struct {
	dataLayer
	srcLat, srcLon   string
	destLat, destLon string
	cfg              GraphConfig
	paint            paint
}

// NewGraphLayer validates its arguments and returns a graph layer. The four
// field names select the source and destination coordinate columns.
func NewGraphLayer(data *Data, srcLat, srcLon, destLat, destLon string, cfg ...GraphConfig) (*GraphLayer, error) {
	const op = "Graph"
	c, err := pickConfig(op, cfg, DefaultGraphConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, srcLat, srcLon, destLat, destLon); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "linewidth", c.LineWidth); err != nil {
		return nil, err
	}
	if err := validateAlpha(op, c.Alpha); err != nil {
		return nil, err
	}
	p, err := parsePaint(op, "color", c.Color, uint8(c.Alpha))
	if err != nil {
		return nil, err
	}
	return &GraphLayer{
		dataLayer: dataLayer{data},
		srcLat:    srcLat,
		srcLon:    srcLon,
		destLat:   destLat,
		destLon:   destLon,
		cfg:       c,
		paint:     p,
	}, nil
}

// Kind implements Layer.
func (l *GraphLayer) Kind() LayerKind { return LayerGraph }

// Fields returns the source and destination column names.
func (l *GraphLayer) Fields() (srcLat, srcLon, destLat, destLon string) {
	return l.srcLat, l.srcLon, l.destLat, l.destLon
}

// Config returns a copy of the layer parameters.
func (l *GraphLayer) Config() GraphConfig { return l.cfg }

// --- Shapefile ---

// ShapefileConfig holds the optional parameters of a shapefile layer.
// Start from DefaultShapefileConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type ShapefileConfig struct {
	Tooltip   ShapeTooltip
	Color     *Color // nil picks the automatic color
	LineWidth float64
	ShapeType ShapeType
}

// DefaultShapefileConfig returns line width 3 and full shapes.
func DefaultShapefileConfig() ShapefileConfig {
	return ShapefileConfig{LineWidth: 3, ShapeType: ShapeFull}
}

// ShapefileLayer draws the records of a shapefile.
type ShapefileLayer struct {
	path string
	cfg  ShapefileConfig
}

// NewShapefileLayer validates its arguments and returns a shapefile layer.
// path must name an existing file.
func NewShapefileLayer(path string, cfg ...ShapefileConfig) (*ShapefileLayer, error) {
	const op = "Shapefiles"
	c, err := pickConfig(op, cfg, DefaultShapefileConfig())
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, invalidArg(op, "fname", path, "path must be set")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, invalidArg(op, "fname", path, err.Error())
	}
	if err := validatePositive(op, "linewidth", c.LineWidth); err != nil {
		return nil, err
	}
	if c.ShapeType != ShapeFull && c.ShapeType != ShapeBBox {
		return nil, invalidArg(op, "shape_type", c.ShapeType, "must be one of full, bbox")
	}
	c.Color = cloneColor(c.Color)
	return &ShapefileLayer{path: path, cfg: c}, nil
}

// Kind implements Layer.
func (l *ShapefileLayer) Kind() LayerKind { return LayerShapefile }

// Path returns the shapefile path.
func (l *ShapefileLayer) Path() string { return l.path }

// Config returns a copy of the layer parameters.
func (l *ShapefileLayer) Config() ShapefileConfig {
	c := l.cfg
	c.Color = cloneColor(c.Color)
	return c
}

func (l *ShapefileLayer) isLayer() {}

// --- Voronoi ---

// VoronoiConfig holds the optional parameters of a voronoi layer.
// Start from DefaultVoronoiConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type VoronoiConfig struct {
	LineColor *Color
	LineWidth float64
	Tooltip   Tooltip
	Cmap      string  // empty leaves cells unfilled
	MaxArea   float64 // scaling constant for cell colors
	Alpha     int
}

// DefaultVoronoiConfig returns line width 2, max area 1e4 and alpha 220.
func DefaultVoronoiConfig() VoronoiConfig {
	return VoronoiConfig{LineWidth: 2, MaxArea: 1e4, Alpha: 220}
}

// VoronoiLayer draws the voronoi tessellation of the points.
type VoronoiLayer struct {
	dataLayer
	cfg VoronoiConfig
}

// NewVoronoiLayer validates its arguments and returns a voronoi layer.
func NewVoronoiLayer(data *Data, cfg ...VoronoiConfig) (*VoronoiLayer, error) {
	const op = "Voronoi"
	c, err := pickConfig(op, cfg, DefaultVoronoiConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, ColLat, ColLon); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "line_width", c.LineWidth); err != nil {
		return nil, err
	}
	if err := validateCmap(op, "cmap", c.Cmap, true); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "max_area", c.MaxArea); err != nil {
		return nil, err
	}
	if err := validateAlpha(op, c.Alpha); err != nil {
		return nil, err
	}
	c.LineColor = cloneColor(c.LineColor)
	return &VoronoiLayer{dataLayer: dataLayer{data}, cfg: c}, nil
}

// Kind implements Layer.
func (l *VoronoiLayer) Kind() LayerKind { return LayerVoronoi }

// Config returns a copy of the layer parameters.
func (l *VoronoiLayer) Config() VoronoiConfig {
	c := l.cfg
	c.LineColor = cloneColor(c.LineColor)
	return c
}

// --- Delaunay ---

// DelaunayConfig holds the optional parameters of a delaunay layer.
// Start from DefaultDelaunayConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type DelaunayConfig struct {
	LineColor *Color
	LineWidth float64
	Cmap      string  // empty draws every edge in LineColor
	MaxLength float64 // scaling constant for edge colors
}

// DefaultDelaunayConfig returns line width 2 and max length 100.
func DefaultDelaunayConfig() DelaunayConfig {
	return DelaunayConfig{LineWidth: 2, MaxLength: 100}
}

// DelaunayLayer draws the delaunay triangulation of the points.
type DelaunayLayer struct {
	dataLayer
	cfg DelaunayConfig
}

// NewDelaunayLayer validates its arguments and returns a delaunay layer.
func NewDelaunayLayer(data *Data, cfg ...DelaunayConfig) (*DelaunayLayer, error) {
	const op = "Delaunay"
	c, err := pickConfig(op, cfg, DefaultDelaunayConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, ColLat, ColLon); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "line_width", c.LineWidth); err != nil {
		return nil, err
	}
	if err := validateCmap(op, "cmap", c.Cmap, true); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "max_length", c.MaxLength); err != nil {
		return nil, err
	}
	c.LineColor = cloneColor(c.LineColor)
	return &DelaunayLayer{dataLayer: dataLayer{data}, cfg: c}, nil
}

// Kind implements Layer.
func (l *DelaunayLayer) Kind() LayerKind { return LayerDelaunay }

// Config returns a copy of the layer parameters.
func (l *DelaunayLayer) Config() DelaunayConfig {
	c := l.cfg
	c.LineColor = cloneColor(c.LineColor)
	return c
}
