package geoplot

import "github.com/hajimehoshi/ebiten/v2"

// DisplaySizer reports the physical screen size in pixels.
type DisplaySizer interface {
	ScreenSize() (width, height int)
}

// DisplaySizerFunc adapts an ordinary function to DisplaySizer.
type DisplaySizerFunc func() (width, height int)

// ScreenSize implements DisplaySizer.
func (f DisplaySizerFunc) ScreenSize() (width, height int) {
	return f()
}

// Screen size assumed when the display cannot be queried (headless hosts).
const (
	fallbackScreenW = 1280
	fallbackScreenH = 720
)

// defaultWindowFraction is the share of the display a new window covers.
const defaultWindowFraction = 0.9

// monitorDisplay queries the monitor ebiten will open its window on.
type monitorDisplay struct{}

func (monitorDisplay) ScreenSize() (width, height int) {
	m := ebiten.Monitor()
	if m == nil {
		return 0, 0
	}
	return m.Size()
}

// defaultWindowSize returns 90% of the detected display size.
func defaultWindowSize(d DisplaySizer) (w, h int) {
	sw, sh := d.ScreenSize()
	if sw <= 0 || sh <= 0 {
		sw, sh = fallbackScreenW, fallbackScreenH
	}
	return int(float64(sw) * defaultWindowFraction), int(float64(sh) * defaultWindowFraction)
}
