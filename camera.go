package geoplot

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits of the map camera, as slippy-map tile zoom levels.
const (
	maxTileZoom = 18
	fitMaxZoom  = 14 // fitting a single point stops here
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// zoomAnim holds an active zoom tween and the screen point it keeps fixed.
type zoomAnim struct {
	tween            *gween.Tween
	target           float64
	anchorX, anchorY float64
}

// Camera controls the view onto the map. World coordinates are Web
// Mercator pixels at zoom level 0, so the whole world spans
// TileSize x TileSize.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the number of screen pixels per world pixel. Zoom 2^n shows
	// basemap tiles of level n at their native size.
	Zoom float64
	// MinZoom and MaxZoom bound Zoom.
	MinZoom, MaxZoom float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
	zoomTween   *zoomAnim
}

// worldRect is the extent of the Web Mercator world in world coordinates.
var worldRect = Rect{X: 0, Y: 0, Width: TileSize, Height: TileSize}

// newCamera creates a Camera with default values and the given viewport.
// It is clamped to the world.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		X:             TileSize / 2,
		Y:             TileSize / 2,
		Zoom:          1.0,
		MinZoom:       1.0,
		MaxZoom:       math.Exp2(maxTileZoom),
		Viewport:      viewport,
		BoundsEnabled: true,
		Bounds:        worldRect,
		dirty:         true,
	}
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// ZoomTo animates Zoom to zoom over duration seconds, keeping the world
// point under the screen position (anchorX, anchorY) fixed.
func (c *Camera) ZoomTo(zoom, anchorX, anchorY float64, duration float32, easeFn ease.TweenFunc) {
	zoom = c.clampZoom(zoom)
	c.zoomTween = &zoomAnim{
		tween:   gween.New(float32(c.Zoom), float32(zoom), duration, easeFn),
		target:  zoom,
		anchorX: anchorX,
		anchorY: anchorY,
	}
}

// ZoomAt sets Zoom immediately, keeping the world point under the screen
// position (sx, sy) fixed.
func (c *Camera) ZoomAt(zoom, sx, sy float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = c.clampZoom(zoom)
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	c.X = wx - (sx-cx)/c.Zoom
	c.Y = wy - (sy-cy)/c.Zoom
	c.ClampToBounds()
	c.dirty = true
}

// Pan moves the camera by a screen-space delta, as when dragging the map.
func (c *Camera) Pan(dx, dy float64) {
	c.X -= dx / c.Zoom
	c.Y -= dy / c.Zoom
	c.ClampToBounds()
	c.dirty = true
}

// FitRect centers the camera on the world rectangle r and picks the largest
// power-of-two zoom at which r fits in the viewport.
func (c *Camera) FitRect(r Rect) {
	c.X = r.X + r.Width/2
	c.Y = r.Y + r.Height/2
	z := math.Min(c.Viewport.Width/r.Width, c.Viewport.Height/r.Height)
	if math.IsInf(z, 1) || math.IsNaN(z) {
		z = math.Exp2(fitMaxZoom)
	}
	z = math.Min(z, math.Exp2(fitMaxZoom))
	if z > 0 {
		z = math.Exp2(math.Floor(math.Log2(z)))
	}
	c.Zoom = c.clampZoom(z)
	c.ClampToBounds()
	c.dirty = true
}

// TileZoom returns the basemap zoom level closest to the current Zoom.
func (c *Camera) TileZoom() int {
	level := int(math.Round(math.Log2(c.Zoom)))
	return max(0, min(level, maxTileZoom))
}

// SetViewport resizes the viewport, as after a window resize.
func (c *Camera) SetViewport(vp Rect) {
	if c.Viewport == vp {
		return
	}
	c.Viewport = vp
	c.ClampToBounds()
	c.dirty = true
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// update advances scroll and zoom tweens and bounds clamping. Called once
// per tick by the viewer.
func (c *Camera) update(dt float32) {
	prevX, prevY, prevZoom := c.X, c.Y, c.Zoom

	if c.zoomTween != nil {
		val, done := c.zoomTween.tween.Update(dt)
		if done {
			val = float32(c.zoomTween.target)
		}
		c.ZoomAt(float64(val), c.zoomTween.anchorX, c.zoomTween.anchorY)
		if done {
			c.zoomTween = nil
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.X != prevX || c.Y != prevY || c.Zoom != prevZoom {
		c.dirty = true
	}
}

func (c *Camera) clampZoom(z float64) float64 {
	return math.Max(c.MinZoom, math.Min(z, c.MaxZoom))
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom

	c.viewMatrix = multiplyAffine(scaleTranslate(z, cx, cy), scaleTranslate(1, -c.X, -c.Y))
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle visible in the viewport.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(c.Viewport.X, c.Viewport.Y)
	x1, y1 := c.ScreenToWorld(c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
