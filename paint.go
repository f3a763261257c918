package geoplot

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"gonum.org/v1/gonum/floats"
)

// hoverRadius is the distance in pixels within which a point shows its tooltip.
const hoverRadius = 10

// painter draws one layer each frame.
type painter interface {
	// draw renders the layer. Solid shapes go to batch, which the viewer
	// flushes after every painter to keep z-order.
	draw(screen *ebiten.Image, v *View, batch *meshBatch)
	// hover returns the tooltip for the cursor position, or "".
	hover(v *View, mx, my float64) string
	close()
}

// buildPainters creates a painter for every layer in z-order. Kinds the
// viewer cannot draw are logged and skipped.
func buildPainters(layers []Layer, smoothing bool, log *slog.Logger) ([]painter, error) {
	painters := make([]painter, 0, len(layers))
	for i, l := range layers {
		var p painter
		switch l.Kind() {
		case LayerScatter:
			p = &scatterPainter{layer: l.(*ScatterLayer), round: smoothing}
		case LayerHistogram:
			hp, err := newHistPainter(l.(*HistogramLayer))
			if err != nil {
				closePainters(painters)
				return nil, err
			}
			p = hp
		case LayerGraph:
			p = newGraphPainter(l.(*GraphLayer))
		case LayerConvexHull:
			p = &hullPainter{layer: l.(*ConvexHullLayer)}
		case LayerKDE:
			p = &kdePainter{layer: l.(*KDELayer)}
		case LayerMarkers:
			mp, err := newMarkersPainter(l.(*MarkersLayer))
			if err != nil {
				closePainters(painters)
				return nil, err
			}
			p = mp
		case LayerCustom:
			p = &customPainter{layer: l.(*CustomLayer)}
		case LayerVoronoi, LayerDelaunay, LayerShapefile:
			log.Warn("layer kind not rendered by the viewer", "index", i, "kind", l.Kind().String())
			continue
		default:
			closePainters(painters)
			return nil, fmt.Errorf("layer %d: unsupported kind %v", i, l.Kind())
		}
		painters = append(painters, p)
	}
	return painters, nil
}

func closePainters(painters []painter) {
	for _, p := range painters {
		p.close()
	}
}

// nearestPoint returns the index of the screen point closest to (mx, my)
// within radius, or -1.
func nearestPoint(xs, ys []float64, mx, my, radius float64) int {
	best, bestD := -1, radius*radius
	for i := range min(len(xs), len(ys)) {
		dx, dy := xs[i]-mx, ys[i]-my
		if d := dx*dx + dy*dy; d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

// pointTooltip evaluates tip for the data row nearest the cursor.
func pointTooltip(d *Data, tip Tooltip, v *View, mx, my float64) string {
	if tip == nil {
		return ""
	}
	xs, ys := v.Project(d.Column(ColLat), d.Column(ColLon))
	i := nearestPoint(xs, ys, mx, my, hoverRadius)
	if i < 0 {
		return ""
	}
	return tip(d.Row(i))
}

// --- Scatter ---

type scatterPainter struct {
	layer *ScatterLayer
	round bool
}

func (p *scatterPainter) draw(_ *ebiten.Image, v *View, batch *meshBatch) {
	d := p.layer.data
	c := p.layer.color()
	size := p.layer.cfg.PointSize
	vis := v.cam.Viewport
	xs, ys := v.Project(d.Column(ColLat), d.Column(ColLon))
	for i := range xs {
		x, y := xs[i], ys[i]
		if !vis.Intersects(Rect{X: x - size/2, Y: y - size/2, Width: size, Height: size}) {
			continue
		}
		if p.round {
			batch.Circle(x, y, size/2, c)
		} else {
			batch.Rect(x-size/2, y-size/2, size, size, c)
		}
	}
}

func (p *scatterPainter) hover(v *View, mx, my float64) string {
	return pointTooltip(p.layer.data, p.layer.cfg.Tooltip, v, mx, my)
}

func (p *scatterPainter) close() {}

// --- Histogram ---

type histPainter struct {
	layer  *HistogramLayer
	cmap   ColorMap
	values map[binKey]float64 // bins of the last frame
}

func newHistPainter(l *HistogramLayer) (*histPainter, error) {
	cmap, err := NewColorMap(l.cfg.Cmap, uint8(l.cfg.Alpha), 0)
	if err != nil {
		return nil, err
	}
	return &histPainter{layer: l, cmap: cmap}, nil
}

func (p *histPainter) draw(_ *ebiten.Image, v *View, batch *meshBatch) {
	cfg := p.layer.cfg
	d := p.layer.data
	bin := float64(cfg.BinSize)
	w, h := v.Size()
	xs, ys := v.Project(d.Column(ColLat), d.Column(ColLon))
	p.values = binValues(binPoints(xs, ys, bin, w, h), d, cfg.Group)

	top := maxValue(p.values)
	if cfg.ScaleMax != nil {
		top = *cfg.ScaleMax
	}
	for k, val := range p.values {
		if val <= cfg.ScaleMin {
			continue
		}
		c := p.cmap.ToColor(val, top, cfg.ColorScale)
		batch.Rect(float64(k.X)*bin, float64(k.Y)*bin, bin, bin, c)
	}
}

func (p *histPainter) hover(_ *View, mx, my float64) string {
	if !p.layer.cfg.ShowTooltip || p.values == nil {
		return ""
	}
	bin := float64(p.layer.cfg.BinSize)
	val, ok := p.values[binKey{int(mx / bin), int(my / bin)}]
	if !ok {
		return ""
	}
	return formatValue(val)
}

func (p *histPainter) close() {}

// formatValue prints whole numbers without decimals.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// --- Graph ---

type graphPainter struct {
	layer   *GraphLayer
	lengths []float64 // edge lengths in degrees
	maxLen  float64
}

func newGraphPainter(l *GraphLayer) *graphPainter {
	d := l.data
	lat0, lon0 := d.Column(l.srcLat), d.Column(l.srcLon)
	lat1, lon1 := d.Column(l.destLat), d.Column(l.destLon)
	lengths := make([]float64, d.Len())
	for i := range lengths {
		lengths[i] = math.Hypot(lat1[i]-lat0[i], lon1[i]-lon0[i])
	}
	p := &graphPainter{layer: l, lengths: lengths}
	if len(lengths) > 0 {
		p.maxLen = floats.Max(lengths)
	}
	return p
}

func (p *graphPainter) color(i int) Color {
	pt := p.layer.paint
	if pt.cmap == nil {
		return pt.color
	}
	return pt.cmap.ToColor(p.lengths[i], p.maxLen, ScaleLin)
}

func (p *graphPainter) draw(_ *ebiten.Image, v *View, batch *meshBatch) {
	l := p.layer
	d := l.data
	x0, y0 := v.Project(d.Column(l.srcLat), d.Column(l.srcLon))
	x1, y1 := v.Project(d.Column(l.destLat), d.Column(l.destLon))
	for i := range x0 {
		batch.Line(x0[i], y0[i], x1[i], y1[i], l.cfg.LineWidth, p.color(i))
	}
}

func (p *graphPainter) hover(*View, float64, float64) string { return "" }

func (p *graphPainter) close() {}

// --- Convex hull ---

const hullOutlineWidth = 2

type hullPainter struct {
	layer *ConvexHullLayer
}

func (p *hullPainter) draw(_ *ebiten.Image, v *View, batch *meshBatch) {
	l := p.layer
	d := l.data
	xs, ys := v.Project(d.Column(ColLat), d.Column(ColLon))
	pts := make([]Vec2, len(xs))
	for i := range xs {
		pts[i] = Vec2{xs[i], ys[i]}
	}
	hull := convexHull(pts)
	switch {
	case len(hull) >= 3 && l.cfg.Fill:
		batch.Polygon(hull, l.color)
	case len(hull) >= 2:
		batch.Polyline(hull, hullOutlineWidth, l.color, true)
	}
	if size := l.cfg.PointSize; size > 0 {
		for _, pt := range hull {
			batch.Rect(pt.X-size/2, pt.Y-size/2, size, size, l.color)
		}
	}
}

func (p *hullPainter) hover(*View, float64, float64) string { return "" }

func (p *hullPainter) close() {}

// --- KDE ---

// viewKey identifies a camera state; the KDE surface is recomputed when it changes.
type viewKey struct {
	x, y, zoom float64
	vp         Rect
}

type kdePainter struct {
	layer *KDELayer
	img   *ebiten.Image
	key   viewKey
	valid bool
}

func (p *kdePainter) draw(screen *ebiten.Image, v *View, _ *meshBatch) {
	cam := v.cam
	key := viewKey{cam.X, cam.Y, cam.Zoom, cam.Viewport}
	if !p.valid || key != p.key {
		p.render(v)
		p.key = key
		p.valid = true
	}
	if p.img == nil {
		return
	}
	bin := float64(p.layer.cfg.BinSize)
	op := &ebiten.DrawImageOptions{GeoM: toGeoM(scaleTranslate(bin, 0, 0))}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(p.img, op)
}

// render recomputes the density image for the current view.
func (p *kdePainter) render(v *View) {
	l := p.layer
	d := l.data
	w, h := v.Size()
	xs, ys := v.Project(d.Column(ColLat), d.Column(ColLon))
	g := kdeGrid(xs, ys, w, h, l.bandwidth, l.cfg)
	pix := kdePixels(g, l.cfg)
	if pix == nil {
		return
	}
	if p.img != nil {
		if b := p.img.Bounds(); b.Dx() != g.cols || b.Dy() != g.rows {
			p.img.Deallocate()
			p.img = nil
		}
	}
	if p.img == nil {
		p.img = ebiten.NewImage(g.cols, g.rows)
	}
	p.img.WritePixels(pix)
}

func (p *kdePainter) hover(*View, float64, float64) string { return "" }

func (p *kdePainter) close() {
	if p.img != nil {
		p.img.Deallocate()
		p.img = nil
	}
}

// --- Markers ---

type markersPainter struct {
	layer *MarkersLayer
	img   *ebiten.Image
	scale float64
}

func newMarkersPainter(l *MarkersLayer) (*markersPainter, error) {
	img, _, err := ebitenutil.NewImageFromFile(l.marker)
	if err != nil {
		return nil, fmt.Errorf("load marker %s: %w", l.marker, err)
	}
	b := img.Bounds()
	return &markersPainter{
		layer: l,
		img:   img,
		scale: markerScale(b.Dx(), b.Dy(), l.cfg.PreferredSize),
	}, nil
}

// markerScale fits the larger image side to the preferred size.
func markerScale(w, h int, preferred float64) float64 {
	side := max(w, h)
	if side <= 0 {
		return 1
	}
	return preferred / float64(side)
}

func (p *markersPainter) draw(screen *ebiten.Image, v *View, _ *meshBatch) {
	d := p.layer.data
	b := p.img.Bounds()
	hw := float64(b.Dx()) * p.scale / 2
	hh := float64(b.Dy()) * p.scale / 2
	vis := v.cam.Viewport
	xs, ys := v.Project(d.Column(ColLat), d.Column(ColLon))
	for i := range xs {
		if !vis.Intersects(Rect{X: xs[i] - hw, Y: ys[i] - hh, Width: 2 * hw, Height: 2 * hh}) {
			continue
		}
		op := &ebiten.DrawImageOptions{GeoM: toGeoM(scaleTranslate(p.scale, xs[i]-hw, ys[i]-hh))}
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(p.img, op)
	}
}

func (p *markersPainter) hover(v *View, mx, my float64) string {
	return pointTooltip(p.layer.data, p.layer.cfg.Tooltip, v, mx, my)
}

func (p *markersPainter) close() {
	if p.img != nil {
		p.img.Deallocate()
		p.img = nil
	}
}

// --- Custom ---

type customPainter struct {
	layer *CustomLayer
}

func (p *customPainter) draw(screen *ebiten.Image, v *View, _ *meshBatch) {
	p.layer.Draw(screen, v)
}

func (p *customPainter) hover(*View, float64, float64) string { return "" }

func (p *customPainter) close() {}
