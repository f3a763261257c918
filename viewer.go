package geoplot

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jonboulle/clockwork"
	"github.com/tanema/gween/ease"
)

// windowTitle is the title of the viewer window.
const windowTitle = "geoplot"

// screenshotLabel names interactive screenshots taken with the P key.
const screenshotLabel = "geoplot"

// Viewer is the builtin App: an ebiten window drawing the basemap and the
// session layers. Drag pans and the wheel or +/- zooms. P saves a
// screenshot, M toggles the basemap, F toggles the frame rate readout and
// Esc quits.
type Viewer struct {
	cfg   Config
	log   *slog.Logger
	clock clockwork.Clock

	cam      *Camera
	view     *View
	basemap  *basemap
	painters []painter
	overlay  *overlay
	fps      fpsPanel

	pointer pointerState
	inject  pointerQueue
	script  *scriptRunner
	mouseX  float64
	mouseY  float64
	actions inputActions
	quit    bool
	shots   []string // labels of screenshots to take after the next frame

	frame int
	stats frameStats

	saved  bool  // SaveFig screenshot written
	err    error // first drawing failure, returned from Update
	closed bool
}

// ebiten runs one game loop per process. gameRan is set when Start enters
// it; later viewers fail before touching ebiten.
var gameRan atomic.Bool

// errGameLoopUsed is returned by NewViewer and Start once a viewer has run.
var errGameLoopUsed = errors.New("viewer: ebiten game loop already ran in this process")

var _ App = (*Viewer)(nil)
var _ ebiten.Game = (*Viewer)(nil)

// NewViewer builds the builtin viewer for one session. It is the default
// AppFactory of NewSession. Marker images are loaded here, so a missing
// marker fails the session before any window opens.
//
// Only one viewer can run per process. Once one has started, NewViewer
// returns an error, which Show and SaveFig report as a *RenderError.
func NewViewer(cfg Config, log *slog.Logger) (App, error) {
	if gameRan.Load() {
		return nil, errGameLoopUsed
	}
	return newViewer(cfg, log, clockwork.NewRealClock())
}

func newViewer(cfg Config, log *slog.Logger, clock clockwork.Clock) (*Viewer, error) {
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		return nil, invalidArg("NewViewer", "size", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH), "must be positive")
	}
	painters, err := buildPainters(cfg.Layers, cfg.Smoothing, log)
	if err != nil {
		return nil, err
	}
	ov, err := newOverlay()
	if err != nil {
		closePainters(painters)
		return nil, err
	}

	cam := newCamera(Rect{Width: float64(cfg.ScreenW), Height: float64(cfg.ScreenH)})
	cam.FitRect(initialWorldRect(cfg))

	v := &Viewer{
		cfg:      cfg,
		log:      log,
		clock:    clock,
		cam:      cam,
		view:     &View{cam: cam},
		basemap:  newBasemap(cfg.Tiles, cfg.MapAlpha, log),
		painters: painters,
		overlay:  ov,
	}
	if cfg.Script != nil {
		v.script = newScriptRunner(cfg.Script)
	}
	return v, nil
}

// initialWorldRect returns the world area of the first view: the session
// bbox, else the union of the layer extents, else the whole world.
func initialWorldRect(cfg Config) Rect {
	if cfg.BBox != nil {
		return bboxWorldRect(*cfg.BBox)
	}
	var (
		union BBox
		found bool
	)
	for _, l := range cfg.Layers {
		b, ok := layerBBox(l)
		if !ok {
			continue
		}
		if found {
			union = union.Union(b)
		} else {
			union, found = b, true
		}
	}
	if !found {
		return worldRect
	}
	return bboxWorldRect(union)
}

// Start opens the window and blocks until the viewer terminates.
func (v *Viewer) Start() error {
	if !gameRan.CompareAndSwap(false, true) {
		return errGameLoopUsed
	}
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(v.cfg.ScreenW, v.cfg.ScreenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		return err
	}
	return v.err
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if v.err != nil {
		return v.err
	}
	if v.finished() {
		return ebiten.Termination
	}
	if v.quit {
		// Pending screenshots are written by the next Draw.
		return nil
	}
	dt := 1.0 / float64(ebiten.TPS())
	v.fps.tick(dt)

	v.actions = readActions()
	v.applyActions(v.actions)
	v.stepScript()
	f, injected := v.inject.pop()
	if !injected {
		f = readPointer()
	}
	v.applyPointer(f)

	v.cam.update(float32(dt))
	return nil
}

// finished reports whether the game loop may end: SaveFig has written its
// figure, or quit was requested and no screenshot is pending.
func (v *Viewer) finished() bool {
	return v.saved || (v.quit && len(v.shots) == 0)
}

// stepScript advances the script by one tick and quits after its last step.
func (v *Viewer) stepScript() {
	if v.script == nil {
		return
	}
	v.script.step(v)
	if v.script.done {
		v.quit = true
	}
}

// applyActions handles the keyboard commands of one tick.
func (v *Viewer) applyActions(a inputActions) {
	if a.quit {
		v.quit = true
	}
	if a.screenshot {
		v.shots = append(v.shots, screenshotLabel)
	}
	if a.toggleBasemap {
		v.basemap.visible = !v.basemap.visible
	}
	if a.toggleFPS {
		v.fps.toggle()
	}
	if a.zoomSteps != 0 {
		vp := v.cam.Viewport
		v.zoomBy(a.zoomSteps, vp.X+vp.Width/2, vp.Y+vp.Height/2)
	}
}

// applyPointer pans on drag and zooms on wheel around the cursor.
func (v *Viewer) applyPointer(f pointerFrame) {
	v.mouseX, v.mouseY = f.X, f.Y
	if dx, dy := v.pointer.step(f, defaultDragDeadZone); dx != 0 || dy != 0 {
		v.cam.Pan(dx, dy)
	}
	if steps := wheelSteps(f.WheelY); steps != 0 {
		v.zoomBy(steps, f.X, f.Y)
	}
}

// zoomBy zooms by a power of two per step, keeping (ax, ay) fixed.
func (v *Viewer) zoomBy(steps int, ax, ay float64) {
	target := v.cam.Zoom
	if v.cam.zoomTween != nil {
		target = v.cam.zoomTween.target
	}
	target *= math.Exp2(float64(steps))
	v.cam.ZoomTo(target, ax, ay, zoomDuration, ease.OutQuad)
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBlack)
	stats := frameStats{painters: len(v.painters)}

	t0 := v.clock.Now()
	stats.tilesDrawn, stats.tilesMissing = v.basemap.draw(screen, v.cam)

	t1 := v.clock.Now()
	batch := newScreenBatch(screen, v.cfg.Smoothing)
	for _, p := range v.painters {
		p.draw(screen, v.view, batch)
		batch.flush()
	}
	stats.batches = batch.flushes

	t2 := v.clock.Now()
	v.drawOverlay(screen)
	t3 := v.clock.Now()

	stats.basemapTime = t1.Sub(t0)
	stats.layersTime = t2.Sub(t1)
	stats.overlayTime = t3.Sub(t2)
	v.frame++
	v.stats = stats
	debugLog(v.log, v.frame, stats)

	v.capture(screen)
}

// drawOverlay draws the attribution and, in interactive mode, the status
// line and the tooltip under the cursor.
func (v *Viewer) drawOverlay(screen *ebiten.Image) {
	v.overlay.attribution(screen, v.cfg.Tiles.Attribution())
	if v.cfg.SaveFig != "" {
		return
	}
	v.fps.draw(screen)
	lat, lon := v.view.ScreenToLatLon(v.mouseX, v.mouseY)
	v.overlay.status(screen, fmt.Sprintf("zoom %d  %.4f, %.4f", v.cam.TileZoom(), lat, lon))

	if v.pointer.dragging {
		return
	}
	// Topmost layer wins.
	for i := len(v.painters) - 1; i >= 0; i-- {
		if tip := v.painters[i].hover(v.view, v.mouseX, v.mouseY); tip != "" {
			v.overlay.tooltip(screen, tip, v.mouseX, v.mouseY)
			return
		}
	}
}

// capture writes the SaveFig screenshot after the first frame and any
// screenshot requested with the P key or by the script.
func (v *Viewer) capture(screen *ebiten.Image) {
	if v.cfg.SaveFig != "" && !v.saved {
		v.saved = true
		if err := writePNG(v.cfg.SaveFig, captureImage(screen)); err != nil {
			v.err = fmt.Errorf("savefig: %w", err)
			return
		}
		v.log.Info("figure saved", "path", v.cfg.SaveFig)
	}
	if len(v.shots) > 0 {
		v.writeShots(captureImage(screen))
	}
}

// writeShots saves img once per pending screenshot label.
func (v *Viewer) writeShots(img image.Image) {
	for _, label := range v.shots {
		path := screenshotName(v.clock.Now(), label)
		if err := writePNG(path, img); err != nil {
			v.log.Warn("screenshot failed", "path", path, "error", err)
			continue
		}
		v.log.Info("screenshot saved", "path", path)
	}
	v.shots = v.shots[:0]
}

// Layout implements ebiten.Game. The viewport follows the window size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.cam.SetViewport(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

// Close releases the viewer's images. Calling it again has no effect.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.basemap.close()
	v.fps.close()
	closePainters(v.painters)
	v.painters = nil
}
