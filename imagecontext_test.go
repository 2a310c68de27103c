package oktay2d

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestImageContextWithoutTarget(t *testing.T) {
	c := NewImageContext(nil)
	if c.DrawingContext() != nil {
		t.Error("DrawingContext non-nil without a target")
	}
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size = %vx%v, want 0x0", w, h)
	}
	// Drawing without a target is a no-op.
	c.FillRect(0, 0, 10, 10)
	c.ClearRect(0, 0, 10, 10)

	if err := NewRenderer().Attach(c); err == nil {
		t.Error("Attach accepted a context without a target")
	}
}

func TestImageContextSize(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(320, 200))
	if c.DrawingContext() == nil {
		t.Fatal("DrawingContext nil with a target")
	}
	if w, h := c.Size(); w != 320 || h != 200 {
		t.Errorf("Size = %vx%v, want 320x200", w, h)
	}
}

func TestImageContextTransformComposition(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(10, 10))
	c.Translate(10, 20)
	c.Scale(2, 3)

	m := c.GeoM()
	x, y := m.Apply(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("Apply(1,1) = (%v,%v), want (12,23)", x, y)
	}
}

func TestImageContextTransformMatrix(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(10, 10))
	c.Transform(Transform{ScaleX: 1, SkewY: 0.5, SkewX: 0.25, ScaleY: 1, TranslateX: 4, TranslateY: 8})
	m := c.GeoM()
	x, y := m.Apply(2, 4)
	// x' = a*x + c*y + e, y' = b*x + d*y + f
	if x != 2+1+4 || y != 1+4+8 {
		t.Errorf("Apply(2,4) = (%v,%v), want (7,13)", x, y)
	}
}

func TestImageContextSaveRestore(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(10, 10))
	c.SetLineWidth(3)
	c.Save()
	c.Translate(5, 5)
	c.SetLineWidth(7)
	c.SetFillStyle(Color{R: 1, A: 1})
	if c.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", c.Depth())
	}
	c.Restore()

	m := c.GeoM()
	if x, y := m.Apply(0, 0); x != 0 || y != 0 {
		t.Errorf("transform survived Restore: (%v,%v)", x, y)
	}
	if c.state.lineWidth != 3 {
		t.Errorf("lineWidth = %v, want 3", c.state.lineWidth)
	}
	if c.state.fill != (Color{A: 1}) {
		t.Errorf("fill = %v, want default black", c.state.fill)
	}

	// Unbalanced Restore is ignored.
	c.Restore()
	if c.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", c.Depth())
	}
}

func TestImageContextIgnoresInvalidStyles(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(10, 10))
	c.SetLineWidth(0)
	c.SetLineWidth(-2)
	c.SetFontSize(0)
	c.SetFillStyle(nil)
	if c.state.lineWidth != defaultLineWidth || c.state.fontSize != defaultFontSize || c.state.fill == nil {
		t.Errorf("state = %+v, want defaults", c.state)
	}
}

func TestImageContextSetTargetResetsState(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(10, 10))
	c.Save()
	c.Translate(3, 3)
	next := ebiten.NewImage(20, 20)
	c.SetTarget(next)
	if c.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", c.Depth())
	}
	if c.Image() != next {
		t.Error("Image() is not the new target")
	}
	m := c.GeoM()
	if x, y := m.Apply(0, 0); x != 0 || y != 0 {
		t.Errorf("transform survived SetTarget: (%v,%v)", x, y)
	}
}

func TestImageContextCachesGradientFills(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(64, 64))
	g := c.CreateLinearGradient(0, 0, 32, 0)
	_ = g.AddColorStop(0, "red")
	_ = g.AddColorStop(1, "blue")
	c.SetFillStyle(g)

	c.FillRect(0, 0, 32, 8)
	first := c.gradients[g].img
	c.FillRect(0, 0, 32, 8)
	if c.gradients[g].img != first {
		t.Error("unchanged fill re-rasterized")
	}
	_ = g.AddColorStop(0.5, "green")
	c.FillRect(0, 0, 32, 8)
	if len(c.gradients) != 1 {
		t.Errorf("cached gradients = %d, want 1", len(c.gradients))
	}
	if c.gradients[g].img == first {
		t.Error("raster not refreshed after new stop")
	}
}

func TestImageContextGradientCacheBounded(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(64, 64))
	g := c.CreateLinearGradient(0, 0, 32, 0)
	_ = g.AddColorStop(0, "red")
	_ = g.AddColorStop(1, "blue")
	c.SetFillStyle(g)

	for i := 0; i < 300; i++ {
		c.FillRect(float64(i)*0.5, 0, 32, 8)
	}
	if len(c.gradients) != 1 {
		t.Errorf("cached gradients after moving fill = %d, want 1", len(c.gradients))
	}
}

func TestImageContextReleasesUnusedGradients(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(64, 64))
	a := c.CreateLinearGradient(0, 0, 32, 0)
	b := c.CreateLinearGradient(0, 0, 0, 32)
	for _, g := range []*Gradient{a, b} {
		_ = g.AddColorStop(0, "white")
		_ = g.AddColorStop(1, "black")
		c.SetFillStyle(g)
		c.FillRect(0, 0, 16, 16)
	}

	screen := ebiten.NewImage(64, 64)
	c.SetTarget(screen)
	c.SetFillStyle(a)
	c.FillRect(0, 0, 16, 16)
	c.SetTarget(screen)
	if _, ok := c.gradients[a]; !ok {
		t.Error("gradient filled last frame was released")
	}
	if _, ok := c.gradients[b]; ok {
		t.Error("gradient unused for a frame is still cached")
	}
	c.SetTarget(screen)
	if len(c.gradients) != 0 {
		t.Errorf("cached gradients = %d, want 0", len(c.gradients))
	}
}

func TestImageContextMeasureText(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(10, 10))
	short, h := c.MeasureText("ab")
	long, _ := c.MeasureText("abcdef")
	if short <= 0 || h <= 0 {
		t.Fatalf("MeasureText = (%v,%v), want positive", short, h)
	}
	if long <= short {
		t.Errorf("longer text measured %v <= %v", long, short)
	}
	c.SetFontSize(32)
	big, _ := c.MeasureText("ab")
	if big <= short {
		t.Errorf("larger font measured %v <= %v", big, short)
	}
}

func TestRendererDrawsIntoImageContext(t *testing.T) {
	c := NewImageContext(ebiten.NewImage(100, 100))
	r := NewRenderer()
	if err := r.Attach(c); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	_ = r.Add(NewRectangle(10, 10, 20, 20, MustParseColor("red")))
	_ = r.SetCamera(NewCamera(100, 100))
	r.Clear()
	if err := r.RenderFrame(1); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if c.Depth() != 0 {
		t.Errorf("Depth after frame = %d, want 0", c.Depth())
	}
}
