package oktay2d

import "math/rand/v2"

// Drawable is anything the Renderer can paint. ID must be unique within a
// renderer; Remove matches on it.
type Drawable interface {
	ID() string
	Draw(ctx Context, dt float64)
}

// Updater is implemented by drawables that advance their own state. Update
// is called right after Draw whenever the drawable was drawn.
type Updater interface {
	Update(ctx Context, dt float64)
}

// Bounded is implemented by drawables with a position and size. Only bounded
// drawables take part in camera culling.
type Bounded interface {
	Bounds() Rect
}

// ForceRenderer is implemented by drawables that can opt out of culling.
type ForceRenderer interface {
	ForceRendering() bool
}

// VisibilityReceiver is told the outcome of the culling test each frame.
type VisibilityReceiver interface {
	SetVisible(visible bool)
}

// Object is an embeddable base implementing every optional drawable
// interface except Draw. Shapes embed it and add their own Draw.
type Object struct {
	id string

	X, Y          float64
	Width, Height float64

	// ForceRender bypasses the culling test: the object is drawn every
	// frame but never flagged visible.
	ForceRender bool

	visible bool
}

// NewObject returns an Object with a fresh random id.
func NewObject(x, y, w, h float64) Object {
	return Object{id: NewID(idLength), X: x, Y: y, Width: w, Height: h}
}

// ID implements Drawable. An Object built without NewObject lazily gets an id
// on first use.
func (o *Object) ID() string {
	if o.id == "" {
		o.id = NewID(idLength)
	}
	return o.id
}

// Bounds implements Bounded.
func (o *Object) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// ForceRendering implements ForceRenderer.
func (o *Object) ForceRendering() bool {
	return o.ForceRender
}

// SetVisible implements VisibilityReceiver.
func (o *Object) SetVisible(v bool) {
	o.visible = v
}

// Visible reports whether the object passed the culling test in the last
// frame it took part in.
func (o *Object) Visible() bool {
	return o.visible
}

const (
	idLength   = 18
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NewID returns a random alphanumeric string of length n.
func NewID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
