package geoplot

import (
	"errors"
	"io/fs"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// maxCachedTiles bounds the number of decoded tile images kept in memory.
const maxCachedTiles = 256

// tileKey addresses one slippy-map tile.
type tileKey struct {
	Z, X, Y int
}

// basemap draws the provider's tiles found in its local cache directory.
// Tiles missing on disk are remembered and left black; nothing is fetched.
type basemap struct {
	provider TilesProvider
	alpha    float32
	visible  bool
	log      *slog.Logger

	cache   map[tileKey]*ebiten.Image
	missing map[tileKey]struct{}
	load    func(path string) (*ebiten.Image, error)
}

func newBasemap(provider TilesProvider, alpha int, log *slog.Logger) *basemap {
	return &basemap{
		provider: provider,
		alpha:    float32(alpha) / 255,
		visible:  true,
		log:      log,
		cache:    make(map[tileKey]*ebiten.Image),
		missing:  make(map[tileKey]struct{}),
		load:     loadTileImage,
	}
}

func loadTileImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

// visibleTiles returns the tiles at the camera's tile zoom that intersect the
// visible world area, in row-major order.
func visibleTiles(cam *Camera) []tileKey {
	z := cam.TileZoom()
	n := 1 << z
	size := float64(TileSize) / float64(n)
	b := cam.VisibleBounds()

	c0 := max(0, int(math.Floor(b.X/size)))
	r0 := max(0, int(math.Floor(b.Y/size)))
	c1 := min(n-1, int(math.Floor((b.X+b.Width)/size)))
	r1 := min(n-1, int(math.Floor((b.Y+b.Height)/size)))

	var keys []tileKey
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			keys = append(keys, tileKey{Z: z, X: c, Y: r})
		}
	}
	return keys
}

// tile returns the cached image for k, loading it from disk on first use.
func (m *basemap) tile(k tileKey) *ebiten.Image {
	if img, ok := m.cache[k]; ok {
		return img
	}
	if _, ok := m.missing[k]; ok {
		return nil
	}
	path := m.provider.TilePath(k.Z, k.X, k.Y)
	img, err := m.load(path)
	if err != nil {
		m.missing[k] = struct{}{}
		if !errors.Is(err, fs.ErrNotExist) {
			m.log.Warn("tile unreadable", "path", path, "error", err)
		}
		return nil
	}
	if len(m.cache) >= maxCachedTiles {
		m.evict()
	}
	m.cache[k] = img
	return img
}

// evict drops every cached tile.
func (m *basemap) evict() {
	for k, img := range m.cache {
		img.Deallocate()
		delete(m.cache, k)
	}
}

// draw renders the visible tiles onto screen.
func (m *basemap) draw(screen *ebiten.Image, cam *Camera) (drawn, missing int) {
	if !m.visible {
		return 0, 0
	}
	view := cam.computeViewMatrix()
	for _, k := range visibleTiles(cam) {
		img := m.tile(k)
		if img == nil {
			missing++
			continue
		}
		size := float64(TileSize) / float64(int(1)<<k.Z)
		op := &ebiten.DrawImageOptions{}
		op.GeoM = tileGeoM(view, float64(k.X)*size, float64(k.Y)*size, size, float64(img.Bounds().Dx()))
		op.ColorScale.ScaleAlpha(m.alpha)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
		drawn++
	}
	return drawn, missing
}

// close releases every cached tile image.
func (m *basemap) close() {
	m.evict()
	clear(m.missing)
}
