package oktay2d

import (
	"fmt"
	"time"
)

// DefaultCullMargin is the screen-space slack band, in pixels, added to the
// left and top culling edges.
const DefaultCullMargin = 30

// Renderer owns an ordered list of drawables and paints them through a
// Context. Insertion order is paint order, back to front.
//
// A Renderer is not safe for concurrent use. Drawables may add or remove
// drawables from inside Draw or Update; the change takes effect next frame.
type Renderer struct {
	ctx Context

	drawables []Drawable
	frameBuf  []Drawable
	visible   []Drawable

	camera     *Camera
	global     *Transform
	cullMargin float64

	clearColor *Color

	debug     bool
	lastStats frameStats

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewRenderer creates an unattached renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		cullMargin:    DefaultCullMargin,
		ScreenshotDir: "screenshots",
	}
}

// Attach binds the renderer to the surface's 2D drawing context.
func (r *Renderer) Attach(surface Surface) error {
	if surface == nil {
		return fmt.Errorf("attach: nil surface: %w", ErrInvalidArgument)
	}
	ctx := surface.DrawingContext()
	if ctx == nil {
		return fmt.Errorf("attach: surface has no 2D drawing context: %w", ErrInvalidArgument)
	}
	r.ctx = ctx
	return nil
}

// Context returns the bound drawing context, or nil.
func (r *Renderer) Context() Context {
	return r.ctx
}

func (r *Renderer) requireContext(op string) error {
	if r.ctx == nil {
		return fmt.Errorf("%s: no surface attached: %w", op, ErrInvalidArgument)
	}
	return nil
}

// --- Drawable list ---

// Add appends drawables in order. Either all are added or, if any is nil or
// has an empty id, none are.
func (r *Renderer) Add(ds ...Drawable) error {
	for i, d := range ds {
		if d == nil {
			return fmt.Errorf("add: item %d is not drawable: %w", i, ErrUnsupportedCapability)
		}
		if d.ID() == "" {
			return fmt.Errorf("add: item %d has an empty id: %w", i, ErrInvalidArgument)
		}
	}
	r.drawables = append(r.drawables, ds...)
	return nil
}

// Remove removes the first drawable whose id equals d's id. Later entries
// with the same id stay. It returns an error wrapping ErrNotFound when
// nothing matched; callers may ignore it.
func (r *Renderer) Remove(d Drawable) error {
	if d == nil {
		return fmt.Errorf("remove: nil drawable: %w", ErrInvalidArgument)
	}
	id := d.ID()
	for i, x := range r.drawables {
		if x.ID() == id {
			copy(r.drawables[i:], r.drawables[i+1:])
			r.drawables[len(r.drawables)-1] = nil
			r.drawables = r.drawables[:len(r.drawables)-1]
			return nil
		}
	}
	return fmt.Errorf("remove %q: %w", id, ErrNotFound)
}

// Len returns the number of registered drawables.
func (r *Renderer) Len() int {
	return len(r.drawables)
}

// Drawables returns a copy of the drawable list in paint order.
func (r *Renderer) Drawables() []Drawable {
	out := make([]Drawable, len(r.drawables))
	copy(out, r.drawables)
	return out
}

// VisibleObjects returns the drawables recorded by the most recent camera
// frame. It is empty after a frame with OffscreenRendering set and keeps its
// previous contents across frames drawn without a camera. Every camera frame
// builds a new slice, so a returned slice is never changed by later frames.
func (r *Renderer) VisibleObjects() []Drawable {
	return r.visible
}

// --- Camera and transforms ---

// SetCamera binds cam, or unbinds the current camera when cam is nil.
// A camera with a zero scale factor is rejected.
func (r *Renderer) SetCamera(cam *Camera) error {
	if cam != nil && (cam.ScaleX == 0 || cam.ScaleY == 0) {
		return fmt.Errorf("set camera: zero scale (%v, %v): %w", cam.ScaleX, cam.ScaleY, ErrInvalidArgument)
	}
	r.camera = cam
	return nil
}

// Camera returns the bound camera, or nil.
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// SetGlobalTransform sets the transform applied once per frame before the
// camera. nil clears it.
func (r *Renderer) SetGlobalTransform(t *Transform) error {
	if t == nil {
		r.global = nil
		return nil
	}
	if err := t.validate(); err != nil {
		return fmt.Errorf("set global transform: %w", err)
	}
	g := *t
	r.global = &g
	return nil
}

// GlobalTransform returns the current global transform and whether one is set.
func (r *Renderer) GlobalTransform() (Transform, bool) {
	if r.global == nil {
		return Transform{}, false
	}
	return *r.global, true
}

// viewMatrix is the full drawable-to-surface mapping of a frame: the global
// transform followed by the camera.
func (r *Renderer) viewMatrix() affine {
	m := identityAffine
	if r.global != nil {
		m = r.global.toAffine()
	}
	if r.camera != nil {
		m = m.then(r.camera.matrix())
	}
	return m
}

// WorldToScreen maps a drawable-space point to surface coordinates through
// the global transform and the camera.
func (r *Renderer) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return r.viewMatrix().apply(wx, wy)
}

// ScreenToWorld maps a surface point back to drawable space. ok is false
// when the view cannot be inverted, e.g. a zero camera scale.
func (r *Renderer) ScreenToWorld(sx, sy float64) (wx, wy float64, ok bool) {
	inv, ok := r.viewMatrix().inverse()
	if !ok {
		return 0, 0, false
	}
	wx, wy = inv.apply(sx, sy)
	return wx, wy, true
}

// DrawableAt returns the topmost Bounded drawable whose bounds contain the
// surface point (sx, sy), or nil.
func (r *Renderer) DrawableAt(sx, sy float64) Drawable {
	wx, wy, ok := r.ScreenToWorld(sx, sy)
	if !ok {
		return nil
	}
	for i := len(r.drawables) - 1; i >= 0; i-- {
		b, isBounded := r.drawables[i].(Bounded)
		if isBounded && b.Bounds().Contains(wx, wy) {
			return r.drawables[i]
		}
	}
	return nil
}

// SetCullMargin replaces DefaultCullMargin. m must be finite and non-negative.
func (r *Renderer) SetCullMargin(m float64) error {
	if !isFinite(m) || m < 0 {
		return fmt.Errorf("set cull margin %v: %w", m, ErrInvalidArgument)
	}
	r.cullMargin = m
	return nil
}

// CullMargin returns the current culling margin.
func (r *Renderer) CullMargin() float64 {
	return r.cullMargin
}

// --- Immediate drawing ---

// SaveState pushes the context state.
func (r *Renderer) SaveState() {
	if r.ctx != nil {
		r.ctx.Save()
	}
}

// RestoreState pops the context state.
func (r *Renderer) RestoreState() {
	if r.ctx != nil {
		r.ctx.Restore()
	}
}

// SetBackgroundColor fills the whole surface with a solid color now.
func (r *Renderer) SetBackgroundColor(color string) error {
	c, err := ParseColor(color)
	if err != nil {
		return fmt.Errorf("set background color: %w", err)
	}
	if err := r.requireContext("set background color"); err != nil {
		return err
	}
	w, h := r.ctx.Size()
	r.ctx.Save()
	defer r.ctx.Restore()
	r.ctx.SetFillStyle(c)
	r.ctx.FillRect(0, 0, w, h)
	return nil
}

// SetClearColor makes Clear fill the surface with c after erasing it.
// Pass nil to clear to transparent.
func (r *Renderer) SetClearColor(c *Color) {
	if c == nil {
		r.clearColor = nil
		return
	}
	cc := *c
	r.clearColor = &cc
}

// Clear erases the whole surface. The drawable list is untouched.
func (r *Renderer) Clear() {
	if r.ctx == nil {
		return
	}
	w, h := r.ctx.Size()
	r.ctx.ClearRect(0, 0, w, h)
	if r.clearColor != nil {
		r.ctx.Save()
		r.ctx.SetFillStyle(*r.clearColor)
		r.ctx.FillRect(0, 0, w, h)
		r.ctx.Restore()
	}
}

// Render draws a single drawable with only the camera translation applied.
// A nil drawable renders a full frame instead.
func (r *Renderer) Render(d Drawable, dt float64) error {
	if d == nil {
		return r.RenderFrame(dt)
	}
	if err := r.requireContext("render"); err != nil {
		return err
	}
	r.ctx.Save()
	defer r.ctx.Restore()
	if r.camera != nil {
		r.ctx.Translate(r.camera.X, r.camera.Y)
	}
	d.Draw(r.ctx, dt)
	return nil
}

// --- Gradients ---

// CreateLinearGradient builds a gradient from (x0, y0) to (x1, y1). Stops
// with a non-finite or out-of-range offset, or a color that does not parse,
// are skipped silently.
func (r *Renderer) CreateLinearGradient(x0, y0, x1, y1 float64, stops []ColorStop) (*Gradient, error) {
	for i, v := range [...]float64{x0, y0, x1, y1} {
		if !isFinite(v) {
			return nil, fmt.Errorf("create linear gradient: coordinate %d is %v: %w", i, v, ErrInvalidArgument)
		}
	}
	if err := r.requireContext("create linear gradient"); err != nil {
		return nil, err
	}
	g := r.ctx.CreateLinearGradient(x0, y0, x1, y1)
	g.addStops(stops)
	return g, nil
}

// CreateRadialGradient builds a gradient between the circles (x0, y0, r0)
// and (x1, y1, r1). Radii must be finite and non-negative. Stops are
// filtered as in CreateLinearGradient.
func (r *Renderer) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64, stops []ColorStop) (*Gradient, error) {
	for i, v := range [...]float64{x0, y0, r0, x1, y1, r1} {
		if !isFinite(v) {
			return nil, fmt.Errorf("create radial gradient: argument %d is %v: %w", i, v, ErrInvalidArgument)
		}
	}
	if r0 < 0 || r1 < 0 {
		return nil, fmt.Errorf("create radial gradient: negative radius (%v, %v): %w", r0, r1, ErrInvalidArgument)
	}
	if err := r.requireContext("create radial gradient"); err != nil {
		return nil, err
	}
	g := r.ctx.CreateRadialGradient(x0, y0, r0, x1, y1, r1)
	g.addStops(stops)
	return g, nil
}

// --- Frame ---

// RenderFrame draws one frame. The context state is saved on entry and
// restored on every exit path, including a panicking drawable.
//
// With a camera bound and culling active, only Bounded drawables whose
// origin lies inside the camera's visible bounds are drawn; drawables that
// are not Bounded are skipped. ForceRenderer drawables reporting true are
// always drawn, recorded in VisibleObjects, and flagged not visible.
// Without a camera every drawable is drawn.
func (r *Renderer) RenderFrame(dt float64) error {
	if err := r.requireContext("render frame"); err != nil {
		return err
	}
	var start time.Time
	if r.debug {
		start = time.Now()
	}

	// Snapshot so Draw/Update may add or remove drawables mid-frame.
	r.frameBuf = append(r.frameBuf[:0], r.drawables...)
	stats := frameStats{total: len(r.frameBuf)}

	r.drawFrame(dt, &stats)

	for i := range r.frameBuf {
		r.frameBuf[i] = nil
	}

	stats.visible = len(r.visible)
	if r.debug {
		stats.frameTime = time.Since(start)
	}
	r.lastStats = stats
	r.debugLog(stats)
	r.flushScreenshots()
	return nil
}

func (r *Renderer) drawFrame(dt float64, stats *frameStats) {
	ctx := r.ctx
	ctx.Save()
	defer ctx.Restore()

	if r.global != nil {
		ctx.Transform(*r.global)
	}

	cam := r.camera
	if cam == nil {
		for _, d := range r.frameBuf {
			r.draw(d, dt, stats)
		}
		return
	}

	ctx.Translate(cam.X, cam.Y)
	ctx.Scale(cam.ScaleX, cam.ScaleY)

	bounds, ok := cam.visibleBounds(r.cullMargin)
	culling := !cam.OffscreenRendering && ok
	visible := make([]Drawable, 0, len(r.visible))

	for _, d := range r.frameBuf {
		if !culling {
			r.draw(d, dt, stats)
			continue
		}
		b, isBounded := d.(Bounded)
		if !isBounded {
			stats.culled++
			continue
		}
		if f, ok := d.(ForceRenderer); ok && f.ForceRendering() {
			r.draw(d, dt, stats)
			stats.forced++
			visible = append(visible, d)
			setVisible(d, false)
			continue
		}
		rect := b.Bounds()
		if bounds.contains(rect.X, rect.Y) {
			visible = append(visible, d)
			setVisible(d, true)
			r.draw(d, dt, stats)
		} else {
			setVisible(d, false)
			stats.culled++
		}
	}
	r.visible = visible
}

func (r *Renderer) draw(d Drawable, dt float64, stats *frameStats) {
	d.Draw(r.ctx, dt)
	if u, ok := d.(Updater); ok {
		u.Update(r.ctx, dt)
	}
	stats.drawn++
}

func setVisible(d Drawable, v bool) {
	if vr, ok := d.(VisibilityReceiver); ok {
		vr.SetVisible(v)
	}
}
