package oktay2d

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Paint is anything usable as a fill or stroke style: a solid Color or a
// *Gradient.
type Paint interface {
	// ColorAt returns the paint color at the user-space point (x, y).
	ColorAt(x, y float64) Color
}

// ColorAt implements Paint. A solid color is the same everywhere.
func (c Color) ColorAt(x, y float64) Color {
	return c
}

// ColorStop is one entry of a gradient stop list. Offset is in [0, 1] and
// Color is any string accepted by ParseColor.
type ColorStop struct {
	Offset float64
	Color  string
}

// GradientKind distinguishes linear and radial gradients.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota // color varies along the line between two points
	GradientRadial                     // color varies between two circles
)

// Gradient is a paint whose color varies across user space. Build one with
// Renderer.CreateLinearGradient or Renderer.CreateRadialGradient, or directly
// from a Context.
type Gradient struct {
	kind   GradientKind
	linear *gg.LinearGradientBrush
	radial *gg.RadialGradientBrush
	stops  []ColorStop

	// version increments on every AddColorStop so rasterized copies held by
	// an ImageContext know when to refresh.
	version uint32
}

// NewLinearGradient creates a gradient running from (x0, y0) to (x1, y1)
// with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{
		kind:   GradientLinear,
		linear: gg.NewLinearGradientBrush(x0, y0, x1, y1),
	}
}

// NewRadialGradient creates a gradient between the start circle (x0, y0, r0)
// and the end circle (x1, y1, r1). The end circle's center is the gradient
// center and the start circle's center is its focal point.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return &Gradient{
		kind:   GradientRadial,
		radial: gg.NewRadialGradientBrush(x1, y1, r0, r1).SetFocus(x0, y0),
	}
}

// Kind reports whether the gradient is linear or radial.
func (g *Gradient) Kind() GradientKind {
	return g.kind
}

// Stops returns the accepted color stops in insertion order. The returned
// slice MUST NOT be mutated.
func (g *Gradient) Stops() []ColorStop {
	return g.stops
}

// AddColorStop appends a stop. It fails with ErrInvalidArgument when offset
// is not a finite number in [0, 1] or color does not parse, leaving the
// gradient unchanged.
func (g *Gradient) AddColorStop(offset float64, color string) error {
	if !isFinite(offset) || offset < 0 || offset > 1 {
		return fmt.Errorf("gradient stop offset %v: %w", offset, ErrInvalidArgument)
	}
	c, err := ParseColor(color)
	if err != nil {
		return fmt.Errorf("gradient stop: %w", err)
	}
	rgba := gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	switch g.kind {
	case GradientLinear:
		g.linear.AddColorStop(offset, rgba)
	case GradientRadial:
		g.radial.AddColorStop(offset, rgba)
	}
	g.stops = append(g.stops, ColorStop{Offset: offset, Color: color})
	g.version++
	return nil
}

// ColorAt implements Paint.
func (g *Gradient) ColorAt(x, y float64) Color {
	var c gg.RGBA
	switch g.kind {
	case GradientLinear:
		c = g.linear.ColorAt(x, y)
	case GradientRadial:
		c = g.radial.ColorAt(x, y)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// addStops applies a caller-supplied stop list, silently skipping entries
// the host primitive would reject. It returns how many stops were skipped.
func (g *Gradient) addStops(stops []ColorStop) int {
	skipped := 0
	for _, s := range stops {
		if err := g.AddColorStop(s.Offset, s.Color); err != nil {
			Logger().Debug("gradient stop skipped", "offset", s.Offset, "color", s.Color, "err", err)
			skipped++
		}
	}
	return skipped
}
