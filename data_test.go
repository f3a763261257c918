package geoplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataLengthMismatch(t *testing.T) {
	_, err := NewData(map[string][]float64{"lat": {1, 2}, "lon": {1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewData(map[string][]float64{"": {1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	d, err := NewData(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}

func TestDataAccess(t *testing.T) {
	d, err := NewData(map[string][]float64{
		ColLat: {10, 20, 30},
		ColLon: {1, 2, 3},
		"w":    {5, 6, 7},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"lat", "lon", "w"}, d.Names())
	assert.True(t, d.Has(ColLat, "w"))
	assert.False(t, d.Has("speed"))
	assert.Nil(t, d.Column("speed"))
	assert.Equal(t, map[string]float64{"lat": 20, "lon": 2, "w": 6}, d.Row(1))
}

func TestDataWhereAndHead(t *testing.T) {
	d, err := NewPoints([]float64{10, 20, 30}, []float64{1, 2, 3})
	require.NoError(t, err)

	w, err := d.Where([]bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30}, w.Column(ColLat))
	assert.Equal(t, []float64{1, 3}, w.Column(ColLon))

	_, err = d.Where([]bool{true})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	h := d.Head(2)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []float64{10, 20}, h.Column(ColLat))
	assert.Equal(t, 3, d.Head(10).Len())
	assert.Equal(t, 0, d.Head(-1).Len())
}

func TestDataBBox(t *testing.T) {
	d, err := NewPoints([]float64{55, 56, 54}, []float64{12, 8, 10})
	require.NoError(t, err)
	b, err := d.BBox()
	require.NoError(t, err)
	assert.Equal(t, BBox{MinLat: 54, MaxLat: 56, MinLon: 8, MaxLon: 12}, b)

	nolat, _ := NewData(map[string][]float64{"x": {1}})
	_, err = nolat.BBox()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRequireColumns(t *testing.T) {
	assert.ErrorIs(t, requireColumns("Dot", nil, ColLat), ErrInvalidArgument)
	d, _ := NewPoints([]float64{1}, []float64{2})
	assert.NoError(t, requireColumns("Dot", d, ColLat, ColLon))
	assert.ErrorIs(t, requireColumns("Dot", d, "w"), ErrInvalidArgument)
}

func TestNewBBox(t *testing.T) {
	b, err := NewBBox(54, 58, 7, 14)
	require.NoError(t, err)
	assert.True(t, b.Contains(55, 10))
	assert.True(t, b.Contains(54, 7), "edges are inside")
	assert.False(t, b.Contains(53, 10))
	lat, lon := b.Center()
	assert.Equal(t, 56.0, lat)
	assert.Equal(t, 10.5, lon)

	bad := [][4]float64{
		{10, 5, 0, 1},
		{0, 1, 10, 5},
		{-95, 0, 0, 1},
		{0, 91, 0, 1},
		{math.NaN(), 1, 0, 1},
		{0, 1, math.Inf(-1), 1},
	}
	for _, c := range bad {
		_, err := NewBBox(c[0], c[1], c[2], c[3])
		assert.ErrorIs(t, err, ErrInvalidArgument, "%v", c)
	}
}

func TestBBoxFromPointsAndUnion(t *testing.T) {
	_, err := BBoxFromPoints(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = BBoxFromPoints([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	a := BBox{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10}
	b := BBox{MinLat: -5, MaxLat: 5, MinLon: 20, MaxLon: 30}
	assert.Equal(t, BBox{MinLat: -5, MaxLat: 10, MinLon: 0, MaxLon: 30}, a.Union(b))
	assert.NoError(t, BBoxWorld.validate("test"))
	assert.NoError(t, BBoxUSA.validate("test"))
	assert.NoError(t, BBoxDK.validate("test"))
}
