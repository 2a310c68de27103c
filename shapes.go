package oktay2d

// Rectangle is a filled and optionally outlined axis-aligned box.
type Rectangle struct {
	Object
	Fill      Paint
	Stroke    Paint // nil skips the outline
	LineWidth float64
}

// NewRectangle creates a rectangle filled with fill.
func NewRectangle(x, y, w, h float64, fill Paint) *Rectangle {
	return &Rectangle{Object: NewObject(x, y, w, h), Fill: fill, LineWidth: 1}
}

// Draw implements Drawable.
func (r *Rectangle) Draw(ctx Context, dt float64) {
	ctx.Save()
	defer ctx.Restore()
	if r.Fill != nil {
		ctx.SetFillStyle(r.Fill)
		ctx.FillRect(r.X, r.Y, r.Width, r.Height)
	}
	if r.Stroke != nil {
		ctx.SetStrokeStyle(r.Stroke)
		ctx.SetLineWidth(r.LineWidth)
		ctx.StrokeRect(r.X, r.Y, r.Width, r.Height)
	}
}

// Label draws a single line of text with its top-left corner at (X, Y).
// Width and Height are refreshed from the measured text on every draw so
// culling tracks the text extent.
type Label struct {
	Object
	Text     string
	Fill     Paint
	FontSize float64
}

// NewLabel creates a label at (x, y).
func NewLabel(x, y float64, s string, fill Paint) *Label {
	return &Label{Object: NewObject(x, y, 0, 0), Text: s, Fill: fill, FontSize: defaultFontSize}
}

// Draw implements Drawable.
func (l *Label) Draw(ctx Context, dt float64) {
	ctx.Save()
	defer ctx.Restore()
	ctx.SetFontSize(l.FontSize)
	if l.Fill != nil {
		ctx.SetFillStyle(l.Fill)
	}
	l.Width, l.Height = ctx.MeasureText(l.Text)
	ctx.FillText(l.Text, l.X, l.Y)
}
