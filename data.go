package geoplot

import (
	"maps"
	"slices"
)

// Conventional coordinate column names.
const (
	ColLat = "lat"
	ColLon = "lon"
)

// Data is a column-oriented data access object: a set of named numeric
// columns of equal length. Layers keep a reference to the Data they were
// built from; callers must not mutate the columns afterwards.
type Data struct {
	cols map[string][]float64
	n    int
}

// NewData builds a Data from the given columns. All columns must have the
// same length. The map is copied; the column slices are not.
func NewData(columns map[string][]float64) (*Data, error) {
	n := -1
	for name, col := range columns {
		if name == "" {
			return nil, invalidArg("NewData", "column name", name, "must not be empty")
		}
		if n >= 0 && len(col) != n {
			return nil, invalidArg("NewData", "column "+name, len(col), "all columns must have the same length")
		}
		n = len(col)
	}
	if n < 0 {
		n = 0
	}
	return &Data{cols: maps.Clone(columns), n: n}, nil
}

// NewPoints builds a Data holding only lat and lon columns.
func NewPoints(lats, lons []float64) (*Data, error) {
	return NewData(map[string][]float64{ColLat: lats, ColLon: lons})
}

// Len returns the number of rows.
func (d *Data) Len() int {
	return d.n
}

// Column returns the named column, or nil if it does not exist.
func (d *Data) Column(name string) []float64 {
	return d.cols[name]
}

// Has reports whether every named column exists.
func (d *Data) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := d.cols[name]; !ok {
			return false
		}
	}
	return true
}

// Names returns the column names in sorted order.
func (d *Data) Names() []string {
	return slices.Sorted(maps.Keys(d.cols))
}

// Row returns the values of row i keyed by column name.
func (d *Data) Row(i int) map[string]float64 {
	row := make(map[string]float64, len(d.cols))
	for name, col := range d.cols {
		row[name] = col[i]
	}
	return row
}

// Where returns a new Data holding the rows whose mask entry is true.
func (d *Data) Where(mask []bool) (*Data, error) {
	if len(mask) != d.n {
		return nil, invalidArg("Where", "mask", len(mask), "length must match the number of rows")
	}
	out := make(map[string][]float64, len(d.cols))
	for name, col := range d.cols {
		filtered := make([]float64, 0, d.n)
		for i, keep := range mask {
			if keep {
				filtered = append(filtered, col[i])
			}
		}
		out[name] = filtered
	}
	return NewData(out)
}

// Head returns a new Data holding at most the first n rows.
func (d *Data) Head(n int) *Data {
	n = max(0, min(n, d.n))
	out := make(map[string][]float64, len(d.cols))
	for name, col := range d.cols {
		out[name] = col[:n:n]
	}
	return &Data{cols: out, n: n}
}

// BBox returns the extent of the lat/lon columns.
func (d *Data) BBox() (BBox, error) {
	if !d.Has(ColLat, ColLon) {
		return BBox{}, invalidArg("Data.BBox", "data", d.Names(), "missing lat/lon columns")
	}
	return BBoxFromPoints(d.cols[ColLat], d.cols[ColLon])
}

// requireColumns validates that d is non-nil and holds every named column.
func requireColumns(op string, d *Data, names ...string) error {
	if d == nil {
		return invalidArg(op, "data", nil, "must not be nil")
	}
	for _, name := range names {
		if !d.Has(name) {
			return invalidArg(op, "data", d.Names(), "missing column "+name)
		}
	}
	return nil
}
