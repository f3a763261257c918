package geoplot

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultDragDeadZone = 4.0 // pixels
	zoomDuration        = 0.15
)

// pointerFrame is the mouse state sampled for one tick.
type pointerFrame struct {
	X, Y    float64
	Pressed bool
	WheelY  float64
}

// inputActions are the keyboard commands sampled for one tick.
type inputActions struct {
	quit          bool
	screenshot    bool
	toggleBasemap bool
	toggleFPS     bool
	zoomSteps     int
}

// pointerState tracks a mouse drag across ticks.
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

func readPointer() pointerFrame {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return pointerFrame{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  wy,
	}
}

func readActions() inputActions {
	var a inputActions
	a.quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	a.screenshot = inpututil.IsKeyJustPressed(ebiten.KeyP)
	a.toggleBasemap = inpututil.IsKeyJustPressed(ebiten.KeyM)
	a.toggleFPS = inpututil.IsKeyJustPressed(ebiten.KeyF)
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		a.zoomSteps++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		a.zoomSteps--
	}
	return a
}

// step advances the drag state and returns the screen-space pan delta for
// this tick. Movement within the dead zone of the press position does not
// pan, so plain clicks leave the map still.
func (p *pointerState) step(f pointerFrame, deadZone float64) (dx, dy float64) {
	switch {
	case f.Pressed && !p.down:
		p.down = true
		p.dragging = false
		p.startX, p.startY = f.X, f.Y
	case !f.Pressed && p.down:
		p.down = false
		p.dragging = false
	case f.Pressed && p.down:
		if !p.dragging {
			ddx := f.X - p.startX
			ddy := f.Y - p.startY
			if math.Sqrt(ddx*ddx+ddy*ddy) > deadZone {
				p.dragging = true
			}
		}
		if p.dragging {
			dx, dy = f.X-p.lastX, f.Y-p.lastY
		}
	}
	p.lastX, p.lastY = f.X, f.Y
	return dx, dy
}

// wheelSteps converts a wheel delta to whole zoom steps, one per notch.
func wheelSteps(wheelY float64) int {
	switch {
	case wheelY > 0:
		return int(math.Ceil(wheelY))
	case wheelY < 0:
		return int(math.Floor(wheelY))
	}
	return 0
}
