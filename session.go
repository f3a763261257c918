package geoplot

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/jonboulle/clockwork"
)

// Config is a snapshot of everything a rendering session needs. The runner
// hands one to the AppFactory; Session.Config returns one for inspection.
type Config struct {
	// Layers in z-order: later layers draw on top.
	Layers []Layer
	// BBox constrains the initial viewport. nil fits the view to the data.
	BBox *BBox
	// Tiles selects the basemap.
	Tiles TilesProvider
	// SaveFig, when set, makes the session render once, write a PNG to
	// this path and terminate.
	SaveFig string
	// Smoothing enables anti-aliased lines and points.
	Smoothing bool
	// MapAlpha is the basemap opacity in [0, 255].
	MapAlpha int
	// ScreenW and ScreenH are the requested window size in pixels.
	ScreenW, ScreenH int
	// Script, when set, drives the viewer with synthetic input and ends the
	// session after its last step.
	Script *Script
}

func (c Config) clone() Config {
	c.Layers = slices.Clone(c.Layers)
	if c.BBox != nil {
		b := *c.BBox
		c.BBox = &b
	}
	return c
}

// Session accumulates layers and rendering options for one visualization
// and runs it with Show or SaveFig. After every run, successful or not, the
// session is reset to its construction-time defaults.
//
// A Session is not safe for concurrent use. Mutate it only from the
// goroutine that calls Show or SaveFig.
type Session struct {
	cfg      Config
	defaults Settings
	display  DisplaySizer
	newApp   AppFactory
	logger   *slog.Logger
	clock    clockwork.Clock
	running  bool
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithDisplay sets the display queried for the default window size.
func WithDisplay(d DisplaySizer) SessionOption {
	return func(s *Session) { s.display = d }
}

// WithAppFactory replaces the builtin ebiten viewer.
func WithAppFactory(f AppFactory) SessionOption {
	return func(s *Session) { s.newApp = f }
}

// WithLogger sets the logger used for session diagnostics.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithClock sets the clock used to time sessions.
func WithClock(c clockwork.Clock) SessionOption {
	return func(s *Session) { s.clock = c }
}

// WithSettings replaces DefaultSettings as the construction-time defaults.
// Invalid fields fall back to the builtin defaults; use Settings.Validate
// or LoadSettings to catch them early.
func WithSettings(st Settings) SessionOption {
	return func(s *Session) { s.defaults = st }
}

// NewSession creates a session holding the default configuration.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		defaults: DefaultSettings(),
		display:  monitorDisplay{},
		newApp:   NewViewer,
		logger:   slog.Default(),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset restores every field to its construction-time default, querying
// the display again for the default window size.
func (s *Session) Reset() {
	d := s.defaults
	tiles, err := BuiltinTiles(d.Tiles)
	if err != nil {
		s.logger.Warn("invalid default tiles provider, using builtin default", "tiles", d.Tiles, "default", DefaultTiles)
		tiles, _ = BuiltinTiles(DefaultTiles)
	}
	alpha := d.MapAlpha
	if validateAlpha("Reset", alpha) != nil {
		s.logger.Warn("invalid default map alpha, using builtin default", "alpha", alpha, "default", DefaultMapAlpha)
		alpha = DefaultMapAlpha
	}
	w, h := defaultWindowSize(s.display)
	if d.WindowWidth > 0 {
		w = d.WindowWidth
	}
	if d.WindowHeight > 0 {
		h = d.WindowHeight
	}
	s.cfg = Config{
		Tiles:     tiles,
		Smoothing: d.Smoothing,
		MapAlpha:  alpha,
		ScreenW:   w,
		ScreenH:   h,
	}
}

// Config returns a snapshot of the current state.
func (s *Session) Config() Config {
	return s.cfg.clone()
}

// Layers returns the current layers in z-order.
func (s *Session) Layers() []Layer {
	return slices.Clone(s.cfg.Layers)
}

// Clear removes all layers and leaves every other option untouched.
func (s *Session) Clear() {
	s.cfg.Layers = nil
}

// AddLayer appends an already constructed layer.
func (s *Session) AddLayer(l Layer) error {
	if l == nil {
		return invalidArg("AddLayer", "layer", nil, "must not be nil")
	}
	s.cfg.Layers = append(s.cfg.Layers, l)
	return nil
}

// SetBBox sets the initial viewport. nil fits the view to the data.
func (s *Session) SetBBox(b *BBox) error {
	if b == nil {
		s.cfg.BBox = nil
		return nil
	}
	if err := b.validate("SetBBox"); err != nil {
		return err
	}
	v := *b
	s.cfg.BBox = &v
	return nil
}

// SetSmoothing enables or disables anti-aliasing of lines and points.
func (s *Session) SetSmoothing(enabled bool) {
	s.cfg.Smoothing = enabled
}

// SetMapAlpha sets the basemap opacity. 0 is completely dark, 255 is full
// brightness.
func (s *Session) SetMapAlpha(alpha int) error {
	if err := validateAlpha("SetMapAlpha", alpha); err != nil {
		return err
	}
	s.cfg.MapAlpha = alpha
	return nil
}

// SetWindowSize sets the window size in pixels. Unlike the default, it is
// not limited to the display size.
func (s *Session) SetWindowSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return invalidArg("SetWindowSize", "size", fmt.Sprintf("%dx%d", w, h), "must be positive")
	}
	s.cfg.ScreenW, s.cfg.ScreenH = w, h
	return nil
}

// SetTilesProvider selects one of the builtin basemap styles: watercolor,
// toner, toner-lite, mapquest, darkmatter or positron.
func (s *Session) SetTilesProvider(name string) error {
	p, err := BuiltinTiles(name)
	if err != nil {
		return err
	}
	s.cfg.Tiles = p
	return nil
}

// SetCustomTilesProvider replaces the basemap with a custom provider. The
// record is validated here: URL, TilesDir and Attribution must all be set.
func (s *Session) SetCustomTilesProvider(c CustomTiles) error {
	p, err := NewCustomTiles(c)
	if err != nil {
		return err
	}
	s.cfg.Tiles = p
	return nil
}

// SetScript attaches a script to the next run. nil removes it.
func (s *Session) SetScript(sc *Script) {
	s.cfg.Script = sc
}

// --- Layer factories ---

// Scatter adds a scatter plot of data.
func (s *Session) Scatter(data *Data, cfg ...ScatterConfig) error {
	l, err := NewScatterLayer(data, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// Hist adds a 2D histogram of data.
func (s *Session) Hist(data *Data, cfg ...HistConfig) error {
	l, err := NewHistogramLayer(data, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// Graph adds a line between each (srcLat, srcLon) and (destLat, destLon).
func (s *Session) Graph(data *Data, srcLat, srcLon, destLat, destLon string, cfg ...GraphConfig) error {
	l, err := NewGraphLayer(data, srcLat, srcLon, destLat, destLon, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// Shapefiles adds the shapes of the shapefile at path.
func (s *Session) Shapefiles(path string, cfg ...ShapefileConfig) error {
	l, err := NewShapefileLayer(path, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// Voronoi adds the voronoi tessellation of data.
func (s *Session) Voronoi(data *Data, cfg ...VoronoiConfig) error {
	l, err := NewVoronoiLayer(data, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// Delaunay adds the delaunay triangulation of data.
func (s *Session) Delaunay(data *Data, cfg ...DelaunayConfig) error {
	l, err := NewDelaunayLayer(data, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// ConvexHull adds the convex hull of data drawn in color.
func (s *Session) ConvexHull(data *Data, color Color, cfg ...ConvexHullConfig) error {
	l, err := NewConvexHullLayer(data, color, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// KDE adds a kernel density estimate of data with the given bandwidth in
// screen pixels.
func (s *Session) KDE(data *Data, bandwidth float64, cfg ...KDEConfig) error {
	l, err := NewKDELayer(data, bandwidth, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}

// Markers adds the marker image at every point of data.
func (s *Session) Markers(data *Data, marker string, cfg ...MarkersConfig) error {
	l, err := NewMarkersLayer(data, marker, cfg...)
	if err != nil {
		return err
	}
	return s.AddLayer(l)
}
