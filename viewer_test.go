package geoplot

import (
	"image"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewerConfig(t *testing.T, layers ...Layer) Config {
	t.Helper()
	tiles, err := BuiltinTiles(DefaultTiles)
	require.NoError(t, err)
	return Config{
		Layers:   layers,
		Tiles:    tiles,
		MapAlpha: DefaultMapAlpha,
		ScreenW:  800,
		ScreenH:  600,
	}
}

func newTestViewer(t *testing.T, cfg Config) *Viewer {
	t.Helper()
	v, err := newViewer(cfg, slog.New(slog.DiscardHandler), clockwork.NewFakeClock())
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v
}

func TestInitialWorldRect(t *testing.T) {
	cfg := viewerConfig(t)
	assert.Equal(t, worldRect, initialWorldRect(cfg), "no bbox and no layers")

	dk := BBoxDK
	cfg.BBox = &dk
	assert.Equal(t, bboxWorldRect(BBoxDK), initialWorldRect(cfg))

	a, err := NewScatterLayer(pointsData(t))
	require.NoError(t, err)
	g, err := NewGraphLayer(graphData(t), "lat_a", "lon_a", "lat_b", "lon_b")
	require.NoError(t, err)
	cfg = viewerConfig(t, a, g)
	union := BBox{MinLat: -5, MaxLat: 57, MinLon: -10, MaxLon: 30}
	assert.Equal(t, bboxWorldRect(union), initialWorldRect(cfg))
}

func TestNewViewerRejectsEmptySize(t *testing.T) {
	cfg := viewerConfig(t)
	cfg.ScreenW = 0
	_, err := newViewer(cfg, slog.New(slog.DiscardHandler), clockwork.NewFakeClock())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewViewerFitsBBox(t *testing.T) {
	cfg := viewerConfig(t)
	dk := BBoxDK
	cfg.BBox = &dk
	v := newTestViewer(t, cfg)

	r := bboxWorldRect(BBoxDK)
	assert.InDelta(t, r.X+r.Width/2, v.cam.X, 1e-9)
	assert.InDelta(t, r.Y+r.Height/2, v.cam.Y, 1e-9)
	assert.Equal(t, 128.0, v.cam.Zoom)
	assert.Equal(t, 7, v.view.TileZoom())
	assert.True(t, v.basemap.visible)
}

func TestViewerActions(t *testing.T) {
	v := newTestViewer(t, viewerConfig(t))
	zoom := v.cam.Zoom

	v.applyActions(inputActions{toggleBasemap: true, screenshot: true})
	assert.False(t, v.basemap.visible)
	assert.Equal(t, []string{screenshotLabel}, v.shots)
	assert.False(t, v.quit)

	v.applyActions(inputActions{zoomSteps: 1})
	require.NotNil(t, v.cam.zoomTween)
	assert.Equal(t, zoom*2, v.cam.zoomTween.target)

	// A second step before the animation ends builds on its target.
	v.applyActions(inputActions{zoomSteps: 2})
	assert.Equal(t, zoom*8, v.cam.zoomTween.target)

	v.applyActions(inputActions{quit: true})
	assert.True(t, v.quit)
}

func TestViewerPointerDragPans(t *testing.T) {
	cfg := viewerConfig(t)
	dk := BBoxDK
	cfg.BBox = &dk
	v := newTestViewer(t, cfg)
	x0, y0 := v.cam.X, v.cam.Y

	v.applyPointer(pointerFrame{X: 100, Y: 100, Pressed: true})
	v.applyPointer(pointerFrame{X: 102, Y: 100, Pressed: true})
	assert.Equal(t, x0, v.cam.X, "inside the dead zone")

	v.applyPointer(pointerFrame{X: 164, Y: 100, Pressed: true})
	assert.InDelta(t, x0-62/v.cam.Zoom, v.cam.X, 1e-9)
	assert.Equal(t, y0, v.cam.Y)
	assert.True(t, v.pointer.dragging)

	v.applyPointer(pointerFrame{X: 164, Y: 100})
	assert.False(t, v.pointer.dragging)
	assert.Equal(t, 164.0, v.mouseX)
}

func TestViewerWheelZooms(t *testing.T) {
	v := newTestViewer(t, viewerConfig(t))
	zoom := v.cam.Zoom
	v.applyPointer(pointerFrame{X: 400, Y: 300, WheelY: 1})
	require.NotNil(t, v.cam.zoomTween)
	assert.Equal(t, zoom*2, v.cam.zoomTween.target)
	assert.Equal(t, 400.0, v.cam.zoomTween.anchorX)
}

func TestViewerLayout(t *testing.T) {
	v := newTestViewer(t, viewerConfig(t))
	w, h := v.Layout(1024, 768)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, Rect{Width: 1024, Height: 768}, v.cam.Viewport)
}

func TestViewerCloseIdempotent(t *testing.T) {
	s, err := NewScatterLayer(pointsData(t))
	require.NoError(t, err)
	v := newTestViewer(t, viewerConfig(t, s))
	require.Len(t, v.painters, 1)

	v.Close()
	v.Close()
	assert.True(t, v.closed)
	assert.Nil(t, v.painters)
}

func TestViewerRunsOncePerProcess(t *testing.T) {
	v := newTestViewer(t, viewerConfig(t))
	gameRan.Store(true)
	t.Cleanup(func() { gameRan.Store(false) })

	assert.ErrorIs(t, v.Start(), errGameLoopUsed)
	_, err := NewViewer(viewerConfig(t), slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, errGameLoopUsed)
}

func TestViewerQuitWaitsForScreenshots(t *testing.T) {
	v := newTestViewer(t, viewerConfig(t))
	v.applyActions(inputActions{screenshot: true, quit: true})
	assert.True(t, v.quit)
	assert.False(t, v.finished(), "a screenshot is still pending")

	t.Chdir(t.TempDir())
	v.writeShots(image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	assert.Empty(t, v.shots)
	assert.True(t, v.finished())

	matches, err := filepath.Glob("*_" + screenshotLabel + ".png")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
