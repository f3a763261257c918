package geoplot

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices is the most vertices one DrawTriangles call can address
// with uint16 indices.
const maxBatchVertices = 65535

// circleSegments is the number of edges of a circle approximation.
const circleSegments = 12

// --- White pixel singleton (no sync.Once, the viewer is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Every solid shape is drawn by tinting it through vertex colors.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// meshBatch accumulates solid-color triangles in screen space and submits
// them in as few DrawTriangles calls as the index type allows.
type meshBatch struct {
	verts []ebiten.Vertex
	inds  []uint16

	flushFn func(verts []ebiten.Vertex, inds []uint16)
	flushes int
}

// newScreenBatch returns a batch that draws onto dst.
func newScreenBatch(dst *ebiten.Image, antialias bool) *meshBatch {
	op := &ebiten.DrawTrianglesOptions{AntiAlias: antialias}
	return &meshBatch{
		flushFn: func(verts []ebiten.Vertex, inds []uint16) {
			dst.DrawTriangles(verts, inds, ensureWhitePixel(), op)
		},
	}
}

// begin makes room for n more vertices and returns the index of the first.
func (b *meshBatch) begin(n int) uint16 {
	if len(b.verts)+n > maxBatchVertices {
		b.flush()
	}
	return uint16(len(b.verts))
}

func (b *meshBatch) vertex(x, y float64, c Color) {
	b.verts = append(b.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	})
}

// quad adds the four corners a, b, c, d (in order around the quad).
func (b *meshBatch) quad(ax, ay, bx, by, cx, cy, dx, dy float64, c Color) {
	base := b.begin(4)
	b.vertex(ax, ay, c)
	b.vertex(bx, by, c)
	b.vertex(cx, cy, c)
	b.vertex(dx, dy, c)
	b.inds = append(b.inds, base, base+1, base+2, base, base+2, base+3)
}

// Rect adds an axis-aligned filled rectangle.
func (b *meshBatch) Rect(x, y, w, h float64, c Color) {
	b.quad(x, y, x+w, y, x+w, y+h, x, y+h, c)
}

// Line adds a segment of the given width.
func (b *meshBatch) Line(x0, y0, x1, y1, width float64, c Color) {
	px, py := perpendicular(Vec2{x0, y0}, Vec2{x1, y1})
	hw := width / 2
	px, py = px*hw, py*hw
	b.quad(x0+px, y0+py, x1+px, y1+py, x1-px, y1-py, x0-px, y0-py, c)
}

// Circle adds a filled circle approximated by a polygon.
func (b *meshBatch) Circle(cx, cy, r float64, c Color) {
	base := b.begin(circleSegments + 1)
	b.vertex(cx, cy, c)
	for i := range circleSegments {
		a := 2 * math.Pi * float64(i) / circleSegments
		b.vertex(cx+r*math.Cos(a), cy+r*math.Sin(a), c)
	}
	for i := range circleSegments {
		next := (i+1)%circleSegments + 1
		b.inds = append(b.inds, base, base+uint16(i+1), base+uint16(next))
	}
}

// Polygon adds a filled convex polygon, fan-triangulated from its first vertex.
func (b *meshBatch) Polygon(points []Vec2, c Color) {
	n := len(points)
	if n < 3 {
		return
	}
	base := b.begin(n)
	for _, p := range points {
		b.vertex(p.X, p.Y, c)
	}
	for i := 0; i < n-2; i++ {
		b.inds = append(b.inds, base, base+uint16(i+1), base+uint16(i+2))
	}
}

// Polyline adds the outline through points, closing it back to the first
// point when closed is set.
func (b *meshBatch) Polyline(points []Vec2, width float64, c Color, closed bool) {
	for i := 1; i < len(points); i++ {
		b.Line(points[i-1].X, points[i-1].Y, points[i].X, points[i].Y, width, c)
	}
	if closed && len(points) > 2 {
		last := points[len(points)-1]
		b.Line(last.X, last.Y, points[0].X, points[0].Y, width, c)
	}
}

// flush submits the pending triangles.
func (b *meshBatch) flush() {
	if len(b.inds) == 0 {
		b.verts = b.verts[:0]
		return
	}
	b.flushFn(b.verts, b.inds)
	b.flushes++
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
