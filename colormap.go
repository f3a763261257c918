package geoplot

import (
	"encoding/hex"
	"math"
	"slices"
	"strings"
)

type colorStop struct {
	at      float64
	r, g, b float64
}

var colormapStops = map[string][]colorStop{
	"hot": {
		{0, 0, 0, 0},
		{0.365, 255, 0, 0},
		{0.746, 255, 255, 0},
		{1, 255, 255, 255},
	},
	"jet": {
		{0, 0, 0, 127},
		{0.125, 0, 0, 255},
		{0.375, 0, 255, 255},
		{0.625, 255, 255, 0},
		{0.875, 255, 0, 0},
		{1, 127, 0, 0},
	},
	"gray": {
		{0, 0, 0, 0},
		{1, 255, 255, 255},
	},
	"viridis": {
		{0, 68, 1, 84},
		{0.25, 59, 82, 139},
		{0.5, 33, 145, 140},
		{0.75, 94, 201, 98},
		{1, 253, 231, 37},
	},
	"Blues": {
		{0, 247, 251, 255},
		{0.5, 107, 174, 214},
		{1, 8, 48, 107},
	},
	"Reds": {
		{0, 255, 245, 240},
		{0.5, 251, 106, 74},
		{1, 103, 0, 13},
	},
	"Greens": {
		{0, 247, 252, 245},
		{0.5, 116, 196, 118},
		{1, 0, 68, 27},
	},
}

func init() {
	hot := colormapStops["hot"]
	rev := make([]colorStop, len(hot))
	for i, s := range hot {
		rev[len(hot)-1-i] = colorStop{at: 1 - s.at, r: s.r, g: s.g, b: s.b}
	}
	colormapStops["hot_r"] = rev
}

// ColorMaps returns the names of the available colormaps.
func ColorMaps() []string {
	names := make([]string, 0, len(colormapStops))
	for name := range colormapStops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func knownColormap(name string) bool {
	_, ok := colormapStops[name]
	return ok
}

// ColorMap maps normalized values in [0, 1] onto colors.
type ColorMap struct {
	name  string
	stops []colorStop

	// Alpha is applied to every returned color.
	Alpha uint8
	// Levels discretizes the output into that many steps. 0 disables it.
	Levels int
}

// NewColorMap returns the named colormap.
func NewColorMap(name string, alpha uint8, levels int) (ColorMap, error) {
	stops, ok := colormapStops[name]
	if !ok {
		return ColorMap{}, invalidArg("NewColorMap", "cmap", name, "unknown colormap")
	}
	if levels < 0 {
		return ColorMap{}, invalidArg("NewColorMap", "levels", levels, "must not be negative")
	}
	return ColorMap{name: name, stops: stops, Alpha: alpha, Levels: levels}, nil
}

// Name returns the colormap name.
func (m ColorMap) Name() string {
	return m.name
}

// At returns the color at t, clamped to [0, 1].
func (m ColorMap) At(t float64) Color {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	if m.Levels > 0 {
		t = math.Min(math.Floor(t*float64(m.Levels)), float64(m.Levels-1))
		if m.Levels > 1 {
			t /= float64(m.Levels - 1)
		}
	}
	stops := m.stops
	if len(stops) == 0 {
		return Color{A: m.Alpha}
	}
	i := 1
	for i < len(stops)-1 && stops[i].at < t {
		i++
	}
	lo, hi := stops[i-1], stops[i]
	f := 0.0
	if hi.at > lo.at {
		f = (t - lo.at) / (hi.at - lo.at)
	}
	f = math.Max(0, math.Min(1, f))
	return Color{
		R: uint8(math.Round(lo.r + (hi.r-lo.r)*f)),
		G: uint8(math.Round(lo.g + (hi.g-lo.g)*f)),
		B: uint8(math.Round(lo.b + (hi.b-lo.b)*f)),
		A: m.Alpha,
	}
}

// ToColor scales value against maxValue and returns its color.
func (m ColorMap) ToColor(value, maxValue float64, scale ColorScale) Color {
	return m.At(scaleValue(value, maxValue, scale))
}

// scaleValue normalizes value into [0, 1] relative to maxValue.
func scaleValue(value, maxValue float64, scale ColorScale) float64 {
	if maxValue <= 0 || value <= 0 {
		return 0
	}
	var t float64
	switch scale {
	case ScaleLin:
		t = value / maxValue
	case ScaleLog:
		t = math.Log1p(value) / math.Log1p(maxValue)
	default:
		t = math.Sqrt(value) / math.Sqrt(maxValue)
	}
	return math.Max(0, math.Min(1, t))
}

// paint is either a colormap or a fixed color.
type paint struct {
	cmap  *ColorMap
	color Color
}

// parsePaint accepts a colormap name or a "#rrggbb" / "#rrggbbaa" color.
func parsePaint(op, arg, s string, alpha uint8) (paint, error) {
	if hexStr, ok := strings.CutPrefix(s, "#"); ok {
		b, err := hex.DecodeString(hexStr)
		if err != nil || (len(b) != 3 && len(b) != 4) {
			return paint{}, invalidArg(op, arg, s, "color must be #rrggbb or #rrggbbaa")
		}
		c := Color{R: b[0], G: b[1], B: b[2], A: alpha}
		if len(b) == 4 {
			c.A = b[3]
		}
		return paint{color: c}, nil
	}
	m, err := NewColorMap(s, alpha, 0)
	if err != nil {
		return paint{}, invalidArg(op, arg, s, "must be a colormap name or #rrggbb color")
	}
	return paint{cmap: &m}, nil
}
