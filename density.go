package geoplot

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// binKey addresses one screen-space histogram bin.
type binKey struct {
	X, Y int
}

// binPoints groups row indices by the binSize x binSize screen bin their
// point falls in. Points outside [0, w) x [0, h) are skipped.
func binPoints(xs, ys []float64, binSize, w, h float64) map[binKey][]int {
	bins := make(map[binKey][]int)
	for i := range min(len(xs), len(ys)) {
		x, y := xs[i], ys[i]
		if !(x >= 0 && x < w && y >= 0 && y < h) {
			continue
		}
		k := binKey{int(x / binSize), int(y / binSize)}
		bins[k] = append(bins[k], i)
	}
	return bins
}

// binValues reduces every bin to a value: the row count, or group's result
// when group is set.
func binValues(bins map[binKey][]int, d *Data, group GroupFunc) map[binKey]float64 {
	values := make(map[binKey]float64, len(bins))
	for k, rows := range bins {
		if group != nil {
			values[k] = group(d, rows)
		} else {
			values[k] = float64(len(rows))
		}
	}
	return values
}

// maxValue returns the largest value, or 0 when values is empty.
func maxValue(values map[binKey]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	vs := make([]float64, 0, len(values))
	for _, v := range values {
		vs = append(vs, v)
	}
	return floats.Max(vs)
}

// densityGrid is a row-major grid of screen-space cells holding the
// expected number of points per cell.
type densityGrid struct {
	cols, rows int
	cell       float64
	values     []float64
}

func newDensityGrid(w, h, cell float64) *densityGrid {
	cols := max(1, int(math.Ceil(w/cell)))
	rows := max(1, int(math.Ceil(h/cell)))
	return &densityGrid{cols: cols, rows: rows, cell: cell, values: make([]float64, cols*rows)}
}

func (g *densityGrid) at(c, r int) float64 {
	return g.values[r*g.cols+c]
}

// addCounts adds one to the cell of every point inside the grid.
func (g *densityGrid) addCounts(xs, ys []float64) {
	for i := range min(len(xs), len(ys)) {
		c := int(math.Floor(xs[i] / g.cell))
		r := int(math.Floor(ys[i] / g.cell))
		if c < 0 || c >= g.cols || r < 0 || r >= g.rows {
			continue
		}
		g.values[r*g.cols+c]++
	}
}

// addKernels evaluates a Gaussian kernel of the given bandwidth (in pixels)
// around every point at the cell centers within three bandwidths.
func (g *densityGrid) addKernels(xs, ys []float64, bandwidth float64) {
	norm := g.cell * g.cell / (2 * math.Pi * bandwidth * bandwidth)
	reach := 3 * bandwidth
	for i := range min(len(xs), len(ys)) {
		px, py := xs[i], ys[i]
		c0 := max(0, int(math.Floor((px-reach)/g.cell)))
		c1 := min(g.cols-1, int(math.Floor((px+reach)/g.cell)))
		r0 := max(0, int(math.Floor((py-reach)/g.cell)))
		r1 := min(g.rows-1, int(math.Floor((py+reach)/g.cell)))
		for r := r0; r <= r1; r++ {
			dy := (float64(r)+0.5)*g.cell - py
			for c := c0; c <= c1; c++ {
				dx := (float64(c)+0.5)*g.cell - px
				g.values[r*g.cols+c] += norm * math.Exp(-(dx*dx+dy*dy)/(2*bandwidth*bandwidth))
			}
		}
	}
}

// blur convolves the grid with a Gaussian of standard deviation sigma cells,
// separably along rows then columns. Mass leaving the grid is lost.
func (g *densityGrid) blur(sigma float64) {
	if !(sigma > 0) {
		return
	}
	k := gaussianKernel(sigma)
	radius := len(k) / 2
	tmp := make([]float64, len(g.values))
	for r := range g.rows {
		for c := range g.cols {
			v := g.values[r*g.cols+c]
			if v == 0 {
				continue
			}
			for j, w := range k {
				cc := c + j - radius
				if cc >= 0 && cc < g.cols {
					tmp[r*g.cols+cc] += v * w
				}
			}
		}
	}
	clear(g.values)
	for r := range g.rows {
		for c := range g.cols {
			v := tmp[r*g.cols+c]
			if v == 0 {
				continue
			}
			for j, w := range k {
				rr := r + j - radius
				if rr >= 0 && rr < g.rows {
					g.values[rr*g.cols+c] += v * w
				}
			}
		}
	}
}

// max returns the largest cell value.
func (g *densityGrid) max() float64 {
	return floats.Max(g.values)
}

// sum returns the total mass of the grid.
func (g *densityGrid) sum() float64 {
	return floats.Sum(g.values)
}

// gaussianKernel returns a normalized 1D kernel spanning three standard
// deviations on each side.
func gaussianKernel(sigma float64) []float64 {
	radius := max(1, int(math.Ceil(3*sigma)))
	k := make([]float64, 2*radius+1)
	for i := range k {
		x := float64(i - radius)
		k[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(k), k)
	return k
}

// kdeGrid estimates the density of the screen points for one KDE layer.
func kdeGrid(xs, ys []float64, w, h, bandwidth float64, cfg KDEConfig) *densityGrid {
	g := newDensityGrid(w, h, float64(cfg.BinSize))
	switch cfg.Method {
	case KDEExact:
		g.addKernels(xs, ys, bandwidth)
	default:
		g.addCounts(xs, ys)
		g.blur(bandwidth / float64(cfg.BinSize))
	}
	return g
}

// kdePixels colors the grid into premultiplied RGBA pixels, one per cell.
// Cells at or below CutBelow, or empty, stay transparent.
func kdePixels(g *densityGrid, cfg KDEConfig) []byte {
	cmap, err := NewColorMap(cfg.Cmap, uint8(cfg.Alpha), cfg.CmapLevels)
	if err != nil {
		return nil
	}
	top := g.max()
	if cfg.ClipAbove != nil {
		top = *cfg.ClipAbove
	}
	cut := 0.0
	if cfg.CutBelow != nil {
		cut = *cfg.CutBelow
	}
	pix := make([]byte, 4*len(g.values))
	for i, v := range g.values {
		if v <= 0 || v <= cut {
			continue
		}
		c := cmap.ToColor(v, top, cfg.Scaling)
		a := uint32(c.A)
		pix[4*i] = uint8(uint32(c.R) * a / 255)
		pix[4*i+1] = uint8(uint32(c.G) * a / 255)
		pix[4*i+2] = uint8(uint32(c.B) * a / 255)
		pix[4*i+3] = c.A
	}
	return pix
}
