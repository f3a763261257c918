package geoplot

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is the number of seconds between two readout updates.
const fpsRefresh = 0.5

// fpsPanel is a small FPS/TPS readout in the top-right corner, toggled with
// the F key. 100x32 is enough for "FPS: 60.0\nTPS: 60.0".
type fpsPanel struct {
	img     *ebiten.Image
	visible bool
	elapsed float64
	stale   bool
}

// tick advances the refresh timer, marking the readout stale when due.
func (p *fpsPanel) tick(dt float64) {
	p.elapsed += dt
	if p.elapsed >= fpsRefresh {
		p.elapsed = 0
		p.stale = true
	}
}

func (p *fpsPanel) toggle() {
	p.visible = !p.visible
	p.stale = true
}

func (p *fpsPanel) draw(screen *ebiten.Image) {
	if !p.visible {
		return
	}
	if p.img == nil {
		p.img = ebiten.NewImage(100, 32)
		p.stale = true
	}
	if p.stale {
		p.stale = false
		p.img.Clear()
		p.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(p.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-p.img.Bounds().Dx()), 0)
	screen.DrawImage(p.img, op)
}

func (p *fpsPanel) close() {
	if p.img != nil {
		p.img.Deallocate()
		p.img = nil
	}
}
