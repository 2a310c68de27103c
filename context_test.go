package oktay2d

import (
	"fmt"
	"testing"
)

// recordingContext is a Context that logs every call.
type recordingContext struct {
	calls []string
	depth int
	w, h  float64
}

func newRecordingContext() *recordingContext {
	return &recordingContext{w: 800, h: 600}
}

func (c *recordingContext) log(format string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *recordingContext) DrawingContext() Context { return c }

func (c *recordingContext) Save()                  { c.depth++; c.log("save") }
func (c *recordingContext) Restore()               { c.depth--; c.log("restore") }
func (c *recordingContext) Translate(x, y float64) { c.log("translate(%v,%v)", x, y) }
func (c *recordingContext) Scale(sx, sy float64)   { c.log("scale(%v,%v)", sx, sy) }
func (c *recordingContext) Transform(t Transform) {
	c.log("transform(%v,%v,%v,%v,%v,%v)", t.ScaleX, t.SkewY, t.SkewX, t.ScaleY, t.TranslateX, t.TranslateY)
}
func (c *recordingContext) SetFillStyle(p Paint)           { c.log("fillStyle(%v)", p) }
func (c *recordingContext) SetStrokeStyle(p Paint)         { c.log("strokeStyle(%v)", p) }
func (c *recordingContext) SetLineWidth(w float64)         { c.log("lineWidth(%v)", w) }
func (c *recordingContext) SetFontSize(s float64)          { c.log("fontSize(%v)", s) }
func (c *recordingContext) FillRect(x, y, w, h float64)    { c.log("fillRect(%v,%v,%v,%v)", x, y, w, h) }
func (c *recordingContext) StrokeRect(x, y, w, h float64)  { c.log("strokeRect(%v,%v,%v,%v)", x, y, w, h) }
func (c *recordingContext) ClearRect(x, y, w, h float64)   { c.log("clearRect(%v,%v,%v,%v)", x, y, w, h) }
func (c *recordingContext) FillText(s string, x, y float64) { c.log("fillText(%q,%v,%v)", s, x, y) }
func (c *recordingContext) MeasureText(s string) (float64, float64) {
	return float64(len(s)) * 8, 16
}
func (c *recordingContext) CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	c.log("linearGradient")
	return NewLinearGradient(x0, y0, x1, y1)
}
func (c *recordingContext) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	c.log("radialGradient")
	return NewRadialGradient(x0, y0, r0, x1, y1, r1)
}
func (c *recordingContext) Size() (float64, float64) { return c.w, c.h }

func (c *recordingContext) reset() { c.calls = c.calls[:0] }

// count returns how many recorded calls equal call.
func (c *recordingContext) count(call string) int {
	n := 0
	for _, s := range c.calls {
		if s == call {
			n++
		}
	}
	return n
}

// testDrawable records its draws and updates into a shared log.
type testDrawable struct {
	Object
	name   string
	log    *[]string
	onDraw func()
}

func newTestDrawable(name string, x, y, w, h float64, log *[]string) *testDrawable {
	return &testDrawable{Object: NewObject(x, y, w, h), name: name, log: log}
}

func (d *testDrawable) Draw(ctx Context, dt float64) {
	*d.log = append(*d.log, fmt.Sprintf("draw:%s:%v", d.name, dt))
	if d.onDraw != nil {
		d.onDraw()
	}
}

// updatingDrawable also implements Updater.
type updatingDrawable struct {
	testDrawable
}

func (d *updatingDrawable) Update(ctx Context, dt float64) {
	*d.log = append(*d.log, fmt.Sprintf("update:%s:%v", d.name, dt))
}

// unboundedDrawable has no position or size.
type unboundedDrawable struct {
	id  string
	log *[]string
}

func (d *unboundedDrawable) ID() string { return d.id }
func (d *unboundedDrawable) Draw(ctx Context, dt float64) {
	*d.log = append(*d.log, "draw:"+d.id)
}

func newAttachedRenderer(t *testing.T) (*Renderer, *recordingContext) {
	t.Helper()
	ctx := newRecordingContext()
	r := NewRenderer()
	if err := r.Attach(ctx); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return r, ctx
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
