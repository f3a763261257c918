package geoplot

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	overlayFontSize = 13
	overlayPadding  = 4
	tooltipOffset   = 12
)

var overlayBackground = Color{0, 0, 0, 160}

// overlay draws text boxes over the map: attribution, status line and
// tooltips.
type overlay struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

func newOverlay() (*overlay, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("parse overlay font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: overlayFontSize}
	m := face.Metrics()
	return &overlay{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// measure returns the padded size of the box holding s.
func (o *overlay) measure(s string) (w, h float64) {
	w, h = text.Measure(s, o.face, o.lh)
	return w + 2*overlayPadding, h + 2*overlayPadding
}

// box draws s on a translucent background with its top-left corner at (x, y).
func (o *overlay) box(screen *ebiten.Image, s string, x, y float64) {
	w, h := o.measure(s)
	b := newScreenBatch(screen, false)
	b.Rect(x, y, w, h, overlayBackground)
	b.flush()

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+overlayPadding, y+overlayPadding)
	op.LineSpacing = o.lh
	text.Draw(screen, s, o.face, op)
}

// attribution draws s in the bottom-right corner.
func (o *overlay) attribution(screen *ebiten.Image, s string) {
	if s == "" {
		return
	}
	w, h := o.measure(s)
	sb := screen.Bounds()
	o.box(screen, s, float64(sb.Dx())-w, float64(sb.Dy())-h)
}

// status draws s in the top-left corner.
func (o *overlay) status(screen *ebiten.Image, s string) {
	o.box(screen, s, 0, 0)
}

// tooltip draws s next to the cursor, kept inside the screen.
func (o *overlay) tooltip(screen *ebiten.Image, s string, mx, my float64) {
	if s == "" {
		return
	}
	w, h := o.measure(s)
	sb := screen.Bounds()
	x, y := tooltipPosition(mx, my, w, h, float64(sb.Dx()), float64(sb.Dy()))
	o.box(screen, s, x, y)
}

// tooltipPosition places a w x h box below-right of the cursor, flipping it
// to the other side of the cursor when it would leave the screen.
func tooltipPosition(mx, my, w, h, screenW, screenH float64) (x, y float64) {
	x, y = mx+tooltipOffset, my+tooltipOffset
	if x+w > screenW {
		x = mx - tooltipOffset - w
	}
	if y+h > screenH {
		y = my - tooltipOffset - h
	}
	return max(0, x), max(0, y)
}
