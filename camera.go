package oktay2d

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenPair holds active tweens for one pair of camera fields.
type tweenPair struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// update advances both tweens and writes the values through. It reports
// whether both have finished.
func (p *tweenPair) update(dt float32, x, y *float64) bool {
	if !p.doneX {
		val, done := p.tweenX.Update(dt)
		*x = float64(val)
		p.doneX = done
	}
	if !p.doneY {
		val, done := p.tweenY.Update(dt)
		*y = float64(val)
		p.doneY = done
	}
	return p.doneX && p.doneY
}

// Camera is the view a Renderer draws through. X and Y are a screen-space
// translation applied before ScaleX/ScaleY, so moving the view right means
// decreasing X. All fields may be mutated directly between frames.
//
// ScaleX and ScaleY must be nonzero; culling is skipped for a frame in which
// either is zero.
type Camera struct {
	X, Y           float64
	ScaleX, ScaleY float64
	// Width and Height are the viewport size in screen pixels.
	Width, Height float64

	// OffscreenRendering disables culling: every drawable is drawn and no
	// visibility bookkeeping happens.
	OffscreenRendering bool

	scroll *tweenPair
	zoom   *tweenPair
}

// NewCamera creates a camera at the origin with unit scale and the given
// viewport size.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		ScaleX: 1,
		ScaleY: 1,
		Width:  width,
		Height: height,
	}
}

// ScrollTo animates X and Y to the given values over duration seconds.
// The animation advances with the SceneUpdater driving the camera's renderer.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &tweenPair{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// ZoomTo animates ScaleX and ScaleY to the given values over duration
// seconds. Targets must be nonzero.
func (c *Camera) ZoomTo(sx, sy float64, duration float32, easeFn ease.TweenFunc) {
	c.zoom = &tweenPair{
		tweenX: gween.New(float32(c.ScaleX), float32(sx), duration, easeFn),
		tweenY: gween.New(float32(c.ScaleY), float32(sy), duration, easeFn),
	}
}

// Animating reports whether a scroll or zoom animation is in progress.
func (c *Camera) Animating() bool {
	return c.scroll != nil || c.zoom != nil
}

// StopAnimation cancels any scroll or zoom animation, leaving the fields
// where they are.
func (c *Camera) StopAnimation() {
	c.scroll = nil
	c.zoom = nil
}

// update advances animations by dt seconds.
func (c *Camera) update(dt float32) {
	if c.scroll != nil && c.scroll.update(dt, &c.X, &c.Y) {
		c.scroll = nil
	}
	if c.zoom != nil && c.zoom.update(dt, &c.ScaleX, &c.ScaleY) {
		c.zoom = nil
	}
}

// matrix maps drawable space to screen space: translate, then scale.
func (c *Camera) matrix() affine {
	return translateAffine(c.X, c.Y).then(scaleAffine(c.ScaleX, c.ScaleY))
}

// WorldToScreen maps a point in drawable space to screen space, ignoring any
// global transform. Renderer.WorldToScreen includes it.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return c.matrix().apply(wx, wy)
}

// ScreenToWorld is the inverse of WorldToScreen. It returns the input
// unchanged when a scale factor is zero.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	inv, ok := c.matrix().inverse()
	if !ok {
		return sx, sy
	}
	return inv.apply(sx, sy)
}

// cullBounds is the open interval in drawable space an object's origin must
// fall in to be drawn.
type cullBounds struct {
	left, right, top, bottom float64
}

func (b cullBounds) contains(x, y float64) bool {
	return x > b.left && x < b.right && y > b.top && y < b.bottom
}

// visibleBounds computes the culling rectangle. margin is a screen-space
// slack band on the left and top edges so objects just outside the
// viewport still draw. ok is false when a scale factor is zero.
func (c *Camera) visibleBounds(margin float64) (b cullBounds, ok bool) {
	if c.ScaleX == 0 || c.ScaleY == 0 {
		return cullBounds{}, false
	}
	return cullBounds{
		left:   -(c.X + margin) / c.ScaleX,
		right:  -(c.X - c.Width) / c.ScaleX,
		top:    -(c.Y + margin) / c.ScaleY,
		bottom: -(c.Y - c.Height) / c.ScaleY,
	}, true
}

// VisibleRect returns the culling area in drawable space as a Rect. It is
// the zero Rect when a scale factor is zero.
func (c *Camera) VisibleRect(margin float64) Rect {
	b, ok := c.visibleBounds(margin)
	if !ok {
		return Rect{}
	}
	return Rect{X: b.left, Y: b.top, Width: b.right - b.left, Height: b.bottom - b.top}
}
