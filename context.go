package oktay2d

// Context is the immediate-mode drawing surface a Renderer paints through.
// Transform calls compose with the current transform the way the canvas 2D
// API does: the most recent call applies to coordinates first.
//
// ImageContext is the ebiten-backed implementation; tests use a recording
// fake.
type Context interface {
	// Save pushes the current transform and styles. Restore pops them.
	Save()
	Restore()

	Translate(x, y float64)
	Scale(sx, sy float64)
	Transform(t Transform)

	SetFillStyle(p Paint)
	SetStrokeStyle(p Paint)
	SetLineWidth(w float64)
	SetFontSize(size float64)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillText(s string, x, y float64)
	MeasureText(s string) (w, h float64)

	CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient

	// Size returns the surface dimensions in pixels.
	Size() (w, h float64)
}

// Surface is a host object that can hand out a 2D drawing context. It
// returns nil when no 2D context is available.
type Surface interface {
	DrawingContext() Context
}
