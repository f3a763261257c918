package geoplot

import "math"

// --- Scatter ---

// ScatterConfig holds the optional parameters of a scatter layer.
// Start from DefaultScatterConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type ScatterConfig struct {
	Color     *Color  // nil picks the automatic color
	PointSize float64 // point edge length in pixels
	Tooltip   Tooltip
}

// DefaultScatterConfig returns point size 2, automatic color and no tooltip.
func DefaultScatterConfig() ScatterConfig {
	return ScatterConfig{PointSize: 2}
}

// ScatterLayer draws one point per data row.
type ScatterLayer struct {
	dataLayer
	cfg ScatterConfig
}

// NewScatterLayer validates its arguments and returns a scatter layer.
func NewScatterLayer(data *Data, cfg ...ScatterConfig) (*ScatterLayer, error) {
	const op = "Scatter"
	c, err := pickConfig(op, cfg, DefaultScatterConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, ColLat, ColLon); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "point size", c.PointSize); err != nil {
		return nil, err
	}
	c.Color = cloneColor(c.Color)
	return &ScatterLayer{dataLayer: dataLayer{data}, cfg: c}, nil
}

// Kind implements Layer.
func (l *ScatterLayer) Kind() LayerKind { return LayerScatter }

// Config returns a copy of the layer parameters.
func (l *ScatterLayer) Config() ScatterConfig {
	c := l.cfg
	c.Color = cloneColor(c.Color)
	return c
}

// color resolves the automatic color.
func (l *ScatterLayer) color() Color {
	if l.cfg.Color != nil {
		return *l.cfg.Color
	}
	return autoColor
}

// --- Histogram ---

// HistConfig holds the optional parameters of a histogram layer.
// Start from DefaultHistConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type HistConfig struct {
	Cmap        string
	Alpha       int
	ColorScale  ColorScale
	BinSize     int // bin edge length in screen pixels
	ShowTooltip bool
	ScaleMin    float64  // bins below this value are not drawn
	ScaleMax    *float64 // nil scales to the largest bin
	Group       GroupFunc
}

// DefaultHistConfig returns the "hot" colormap, alpha 220, sqrt scaling,
// 16 pixel bins, scale minimum 0, automatic maximum and counting.
func DefaultHistConfig() HistConfig {
	return HistConfig{
		Cmap:       "hot",
		Alpha:      220,
		ColorScale: ScaleSqrt,
		BinSize:    16,
	}
}

// HistogramLayer bins points in screen space and colors each bin.
type HistogramLayer struct {
	dataLayer
	cfg HistConfig
}

// NewHistogramLayer validates its arguments and returns a histogram layer.
func NewHistogramLayer(data *Data, cfg ...HistConfig) (*HistogramLayer, error) {
	const op = "Hist"
	c, err := pickConfig(op, cfg, DefaultHistConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, ColLat, ColLon); err != nil {
		return nil, err
	}
	if err := validateCmap(op, "cmap", c.Cmap, false); err != nil {
		return nil, err
	}
	if err := validateAlpha(op, c.Alpha); err != nil {
		return nil, err
	}
	if !c.ColorScale.valid() {
		return nil, invalidArg(op, "colorscale", c.ColorScale, "must be one of lin, log, sqrt")
	}
	if c.BinSize <= 0 {
		return nil, invalidArg(op, "binsize", c.BinSize, "must be positive")
	}
	if c.ScaleMax != nil && *c.ScaleMax < c.ScaleMin {
		return nil, invalidArg(op, "scalemax", *c.ScaleMax, "must not be below scalemin")
	}
	c.ScaleMax = cloneFloat(c.ScaleMax)
	return &HistogramLayer{dataLayer: dataLayer{data}, cfg: c}, nil
}

// Kind implements Layer.
func (l *HistogramLayer) Kind() LayerKind { return LayerHistogram }

// Config returns a copy of the layer parameters.
func (l *HistogramLayer) Config() HistConfig {
	c := l.cfg
	c.ScaleMax = cloneFloat(c.ScaleMax)
	return c
}

// --- KDE ---

// KDEConfig holds the optional parameters of a kernel density layer.
// Start from DefaultKDEConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type KDEConfig struct {
	Cmap       string
	Method     KDEMethod
	Scaling    ColorScale
	Alpha      int
	CutBelow   *float64 // densities below this are not drawn
	ClipAbove  *float64 // maximum value of the color scale
	BinSize    int      // bin edge length in screen pixels for the hist method
	CmapLevels int      // number of discrete color levels
}

// DefaultKDEConfig returns the "hot" colormap, the hist method, sqrt
// scaling, alpha 220, 1 pixel bins and 10 color levels.
func DefaultKDEConfig() KDEConfig {
	return KDEConfig{
		Cmap:       "hot",
		Method:     KDEHist,
		Scaling:    ScaleSqrt,
		Alpha:      220,
		BinSize:    1,
		CmapLevels: 10,
	}
}

// KDELayer draws a kernel density estimate of the points.
type KDELayer struct {
	dataLayer
	bandwidth float64
	cfg       KDEConfig
}

// NewKDELayer validates its arguments and returns a KDE layer. bandwidth is
// the kernel bandwidth in screen pixels.
func NewKDELayer(data *Data, bandwidth float64, cfg ...KDEConfig) (*KDELayer, error) {
	const op = "KDE"
	c, err := pickConfig(op, cfg, DefaultKDEConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, ColLat, ColLon); err != nil {
		return nil, err
	}
	if err := validatePositive(op, "bandwidth", bandwidth); err != nil {
		return nil, err
	}
	if err := validateCmap(op, "cmap", c.Cmap, false); err != nil {
		return nil, err
	}
	if c.Method != KDEHist && c.Method != KDEExact {
		return nil, invalidArg(op, "method", c.Method, "must be one of kde, hist")
	}
	if !c.Scaling.valid() {
		return nil, invalidArg(op, "scaling", c.Scaling, "must be one of lin, log, sqrt")
	}
	if err := validateAlpha(op, c.Alpha); err != nil {
		return nil, err
	}
	if c.BinSize <= 0 {
		return nil, invalidArg(op, "binsize", c.BinSize, "must be positive")
	}
	if c.CmapLevels <= 0 {
		return nil, invalidArg(op, "cmap_levels", c.CmapLevels, "must be positive")
	}
	if c.CutBelow != nil && c.ClipAbove != nil && *c.CutBelow >= *c.ClipAbove {
		return nil, invalidArg(op, "cut_below", *c.CutBelow, "must be below clip_above")
	}
	c.CutBelow = cloneFloat(c.CutBelow)
	c.ClipAbove = cloneFloat(c.ClipAbove)
	return &KDELayer{dataLayer: dataLayer{data}, bandwidth: bandwidth, cfg: c}, nil
}

// Kind implements Layer.
func (l *KDELayer) Kind() LayerKind { return LayerKDE }

// Bandwidth returns the kernel bandwidth in screen pixels.
func (l *KDELayer) Bandwidth() float64 { return l.bandwidth }

// Config returns a copy of the layer parameters.
func (l *KDELayer) Config() KDEConfig {
	c := l.cfg
	c.CutBelow = cloneFloat(c.CutBelow)
	c.ClipAbove = cloneFloat(c.ClipAbove)
	return c
}

// --- Markers ---

// MarkersConfig holds the optional parameters of a markers layer.
// Start from DefaultMarkersConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type MarkersConfig struct {
	Tooltip       Tooltip
	PreferredSize float64 // marker edge length in pixels
}

// DefaultMarkersConfig returns a preferred marker size of 32 pixels.
func DefaultMarkersConfig() MarkersConfig {
	return MarkersConfig{PreferredSize: 32}
}

// MarkersLayer draws an image at each data point.
type MarkersLayer struct {
	dataLayer
	marker string
	cfg    MarkersConfig
}

// NewMarkersLayer validates its arguments and returns a markers layer.
// marker is the path of the marker image.
func NewMarkersLayer(data *Data, marker string, cfg ...MarkersConfig) (*MarkersLayer, error) {
	const op = "Markers"
	c, err := pickConfig(op, cfg, DefaultMarkersConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, ColLat, ColLon); err != nil {
		return nil, err
	}
	if marker == "" {
		return nil, invalidArg(op, "marker", marker, "image path must be set")
	}
	if err := validatePositive(op, "marker_preferred_size", c.PreferredSize); err != nil {
		return nil, err
	}
	return &MarkersLayer{dataLayer: dataLayer{data}, marker: marker, cfg: c}, nil
}

// Kind implements Layer.
func (l *MarkersLayer) Kind() LayerKind { return LayerMarkers }

// Marker returns the marker image path.
func (l *MarkersLayer) Marker() string { return l.marker }

// Config returns a copy of the layer parameters.
func (l *MarkersLayer) Config() MarkersConfig { return l.cfg }

// --- Convex hull ---

// ConvexHullConfig holds the optional parameters of a convex hull layer.
// Start from DefaultConvexHullConfig and change what you need: fields
// left out of a literal are zero, not defaulted.
type ConvexHullConfig struct {
	Fill      bool
	PointSize float64 // size of the hull vertices; 0 hides them
}

// DefaultConvexHullConfig returns a filled hull with 4 pixel vertices.
func DefaultConvexHullConfig() ConvexHullConfig {
	return ConvexHullConfig{Fill: true, PointSize: 4}
}

// ConvexHullLayer draws the convex hull of the points.
type ConvexHullLayer struct {
	dataLayer
	color Color
	cfg   ConvexHullConfig
}

// NewConvexHullLayer validates its arguments and returns a convex hull layer.
func NewConvexHullLayer(data *Data, color Color, cfg ...ConvexHullConfig) (*ConvexHullLayer, error) {
	const op = "ConvexHull"
	c, err := pickConfig(op, cfg, DefaultConvexHullConfig())
	if err != nil {
		return nil, err
	}
	if err := requireColumns(op, data, ColLat, ColLon); err != nil {
		return nil, err
	}
	if c.PointSize < 0 || math.IsNaN(c.PointSize) {
		return nil, invalidArg(op, "point_size", c.PointSize, "must not be negative")
	}
	return &ConvexHullLayer{dataLayer: dataLayer{data}, color: color, cfg: c}, nil
}

// Kind implements Layer.
func (l *ConvexHullLayer) Kind() LayerKind { return LayerConvexHull }

// Color returns the hull color.
func (l *ConvexHullLayer) Color() Color { return l.color }

// Config returns a copy of the layer parameters.
func (l *ConvexHullLayer) Config() ConvexHullConfig { return l.cfg }

func cloneColor(p *Color) *Color {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
