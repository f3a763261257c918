package geoplot

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// freeCamera returns a camera with bounds clamping disabled.
func freeCamera(w, h float64) *Camera {
	cam := newCamera(Rect{X: 0, Y: 0, Width: w, Height: h})
	cam.BoundsEnabled = false
	return cam
}

func TestCameraDefaults(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if !cam.BoundsEnabled {
		t.Error("BoundsEnabled = false, want true")
	}
	if cam.Bounds != worldRect {
		t.Errorf("Bounds = %v, want %v", cam.Bounds, worldRect)
	}
	if cam.X != TileSize/2 || cam.Y != TileSize/2 {
		t.Errorf("position = (%f,%f), want world center", cam.X, cam.Y)
	}
}

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X, cam.Y = 0, 0
	vm := cam.computeViewMatrix()
	sx, sy := transformPoint(vm, 0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X = 100
	cam.Y = 50
	cam.dirty = true
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.Zoom = 2.0
	cam.dirty = true

	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2.0", sx1-sx0)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X = 42
	cam.Y = 17
	cam.Zoom = 1.5
	cam.dirty = true

	origWX, origWY := 123.0, 56.0
	sx, sy := cam.WorldToScreen(origWX, origWY)
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !approxEqual(wx, origWX, 1e-6) || !approxEqual(wy, origWY, 1e-6) {
		t.Errorf("roundtrip: got (%f,%f), want (%f,%f)", wx, wy, origWX, origWY)
	}
}

func TestVisibleBounds_Zoom1(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X = 400
	cam.Y = 300
	cam.dirty = true
	bounds := cam.VisibleBounds()
	if !approxEqual(bounds.X, 0, 1e-6) || !approxEqual(bounds.Y, 0, 1e-6) {
		t.Errorf("VisibleBounds origin = (%f,%f), want (0,0)", bounds.X, bounds.Y)
	}
	if !approxEqual(bounds.Width, 800, 1e-6) || !approxEqual(bounds.Height, 600, 1e-6) {
		t.Errorf("VisibleBounds size = (%f,%f), want (800,600)", bounds.Width, bounds.Height)
	}
}

func TestVisibleBounds_Zoom2(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X = 400
	cam.Y = 300
	cam.Zoom = 2.0
	cam.dirty = true
	bounds := cam.VisibleBounds()
	if !approxEqual(bounds.Width, 400, 1e-6) || !approxEqual(bounds.Height, 300, 1e-6) {
		t.Errorf("VisibleBounds at zoom 2 = (%f,%f), want (400,300)", bounds.Width, bounds.Height)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X, cam.Y = 0, 0
	cam.ScrollTo(100, 200, 1.0, ease.Linear)

	cam.update(0.5)
	if !approxEqual(cam.X, 50, 1.0) || !approxEqual(cam.Y, 100, 1.0) {
		t.Errorf("scroll halfway: cam = (%f,%f), want ~(50,100)", cam.X, cam.Y)
	}

	cam.update(0.5)
	if !approxEqual(cam.X, 100, 1.0) || !approxEqual(cam.Y, 200, 1.0) {
		t.Errorf("scroll end: cam = (%f,%f), want ~(100,200)", cam.X, cam.Y)
	}
	if cam.scrollTween != nil {
		t.Error("scrollTween not nil after completion")
	}
}

func TestCameraZoomAtKeepsAnchor(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X, cam.Y = 100, 100
	cam.dirty = true

	wx, wy := cam.ScreenToWorld(500, 400)
	cam.ZoomAt(4, 500, 400)
	if cam.Zoom != 4 {
		t.Fatalf("Zoom = %f, want 4", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(wx, wy)
	if !approxEqual(sx, 500, 1e-6) || !approxEqual(sy, 400, 1e-6) {
		t.Errorf("anchor moved to (%f,%f), want (500,400)", sx, sy)
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.ZoomAt(0.01, 400, 300)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("Zoom = %f, want MinZoom %f", cam.Zoom, cam.MinZoom)
	}
	cam.ZoomAt(1e9, 400, 300)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("Zoom = %f, want MaxZoom %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestCameraZoomTo(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.ZoomTo(8, 400, 300, 1.0, ease.Linear)
	cam.update(1.0)
	if !approxEqual(cam.Zoom, 8, 1e-4) {
		t.Errorf("Zoom = %f, want 8", cam.Zoom)
	}
	if cam.zoomTween != nil {
		t.Error("zoomTween not nil after completion")
	}
}

func TestCameraPan(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X, cam.Y = 100, 100
	cam.Zoom = 2
	cam.Pan(20, -10)
	if !approxEqual(cam.X, 90, epsilon) || !approxEqual(cam.Y, 105, epsilon) {
		t.Errorf("after Pan: cam = (%f,%f), want (90,105)", cam.X, cam.Y)
	}
}

func TestCameraFitRect(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.FitRect(Rect{X: 100, Y: 100, Width: 10, Height: 10})
	// min(800/10, 600/10) = 60, rounded down to a power of two
	if cam.Zoom != 32 {
		t.Errorf("Zoom = %f, want 32", cam.Zoom)
	}
	if !approxEqual(cam.X, 105, epsilon) || !approxEqual(cam.Y, 105, epsilon) {
		t.Errorf("center = (%f,%f), want (105,105)", cam.X, cam.Y)
	}
	if cam.TileZoom() != 5 {
		t.Errorf("TileZoom = %d, want 5", cam.TileZoom())
	}
}

func TestCameraFitRectPoint(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.FitRect(Rect{X: 128, Y: 128})
	if cam.Zoom != math.Exp2(fitMaxZoom) {
		t.Errorf("Zoom = %f, want 2^%d", cam.Zoom, fitMaxZoom)
	}
}

func TestCameraTileZoom(t *testing.T) {
	tests := []struct {
		zoom float64
		want int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{1024, 10},
		{math.Exp2(20), maxTileZoom},
	}
	for _, tt := range tests {
		cam := freeCamera(800, 600)
		cam.MaxZoom = math.Exp2(24)
		cam.Zoom = tt.zoom
		if got := cam.TileZoom(); got != tt.want {
			t.Errorf("TileZoom at zoom %v = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestCameraBounds(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.Bounds = Rect{X: 0, Y: 0, Width: 1000, Height: 1000}

	cam.X = 0
	cam.Y = 0
	cam.update(0)
	if cam.X < 50 || cam.Y < 50 {
		t.Errorf("bounds clamp min: cam = (%f,%f), want >= (50,50)", cam.X, cam.Y)
	}

	cam.X = 999
	cam.Y = 999
	cam.dirty = true
	cam.update(0)
	if cam.X > 950 || cam.Y > 950 {
		t.Errorf("bounds clamp max: cam = (%f,%f), want <= (950,950)", cam.X, cam.Y)
	}
}

func TestCameraBoundsDisabled(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.Bounds = Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	cam.BoundsEnabled = false

	cam.X = -999
	cam.Y = -999
	cam.update(0)
	if cam.X != -999 || cam.Y != -999 {
		t.Errorf("bounds disabled: cam = (%f,%f), want (-999,-999)", cam.X, cam.Y)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	// The world at zoom 1 is smaller than the viewport, so it is centered.
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 0
	cam.Y = 0
	cam.update(0)
	if !approxEqual(cam.X, 128, epsilon) || !approxEqual(cam.Y, 128, epsilon) {
		t.Errorf("small world center: cam = (%f,%f), want (128,128)", cam.X, cam.Y)
	}
}

func TestCameraSetViewport(t *testing.T) {
	cam := freeCamera(800, 600)
	cam.X, cam.Y = 0, 0
	cam.SetViewport(Rect{Width: 200, Height: 100})
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 100, epsilon) || !approxEqual(sy, 50, epsilon) {
		t.Errorf("WorldToScreen(0,0) after resize = (%f,%f), want (100,50)", sx, sy)
	}
}
