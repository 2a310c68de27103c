package oktay2d

import (
	"bytes"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize  = 16
	defaultLineWidth = 1
)

// drawState is the part of an ImageContext pushed by Save.
type drawState struct {
	geoM      ebiten.GeoM
	fill      Paint
	stroke    Paint
	lineWidth float64
	fontSize  float64
}

func defaultDrawState() drawState {
	return drawState{
		fill:      Color{A: 1},
		stroke:    Color{A: 1},
		lineWidth: defaultLineWidth,
		fontSize:  defaultFontSize,
	}
}

// gradientKey identifies what a cached gradient raster was drawn for.
type gradientKey struct {
	version    uint32
	x, y, w, h float64
}

// gradientRaster is the single cached raster held per gradient.
type gradientRaster struct {
	key  gradientKey
	img  *ebiten.Image
	used bool // filled since the last SetTarget
}

// ImageContext implements Context on top of an *ebiten.Image. Rectangles
// are drawn by scaling and tinting a white pixel. Each gradient keeps one
// raster, reused while its stops and rect are unchanged and released once a
// frame goes by without it being filled.
type ImageContext struct {
	target *ebiten.Image
	state  drawState
	stack  []drawState

	gradients map[*Gradient]*gradientRaster
	faces     map[float64]*text.GoTextFace
}

// NewImageContext creates a context that draws into target. target may be
// nil and bound later with SetTarget.
func NewImageContext(target *ebiten.Image) *ImageContext {
	return &ImageContext{
		target:    target,
		state:     defaultDrawState(),
		gradients: make(map[*Gradient]*gradientRaster),
		faces:     make(map[float64]*text.GoTextFace),
	}
}

// DrawingContext implements Surface. It returns nil while no target image is
// bound.
func (c *ImageContext) DrawingContext() Context {
	if c.target == nil {
		return nil
	}
	return c
}

// SetTarget rebinds the context to a new image, e.g. the screen handed to
// ebiten.Game.Draw. The state stack is reset and gradient rasters not
// filled since the previous call are released.
func (c *ImageContext) SetTarget(img *ebiten.Image) {
	c.target = img
	c.state = defaultDrawState()
	c.stack = c.stack[:0]
	for g, r := range c.gradients {
		if !r.used {
			r.img.Deallocate()
			delete(c.gradients, g)
			continue
		}
		r.used = false
	}
}

// Image returns the bound target image.
func (c *ImageContext) Image() *ebiten.Image {
	return c.target
}

// GeoM returns the current transform.
func (c *ImageContext) GeoM() ebiten.GeoM {
	return c.state.geoM
}

// Depth returns the number of saved states.
func (c *ImageContext) Depth() int {
	return len(c.stack)
}

func (c *ImageContext) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved state. Unbalanced calls are ignored, as on
// a canvas.
func (c *ImageContext) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.state = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

// apply post-multiplies the current transform by local, so local acts on
// coordinates before everything already applied.
func (c *ImageContext) apply(local ebiten.GeoM) {
	local.Concat(c.state.geoM)
	c.state.geoM = local
}

func (c *ImageContext) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	c.apply(m)
}

func (c *ImageContext) Scale(sx, sy float64) {
	var m ebiten.GeoM
	m.Scale(sx, sy)
	c.apply(m)
}

func (c *ImageContext) Transform(t Transform) {
	var m ebiten.GeoM
	m.SetElement(0, 0, t.ScaleX)
	m.SetElement(0, 1, t.SkewX)
	m.SetElement(0, 2, t.TranslateX)
	m.SetElement(1, 0, t.SkewY)
	m.SetElement(1, 1, t.ScaleY)
	m.SetElement(1, 2, t.TranslateY)
	c.apply(m)
}

func (c *ImageContext) SetFillStyle(p Paint) {
	if p != nil {
		c.state.fill = p
	}
}

func (c *ImageContext) SetStrokeStyle(p Paint) {
	if p != nil {
		c.state.stroke = p
	}
}

func (c *ImageContext) SetLineWidth(w float64) {
	if isFinite(w) && w > 0 {
		c.state.lineWidth = w
	}
}

func (c *ImageContext) SetFontSize(size float64) {
	if isFinite(size) && size > 0 {
		c.state.fontSize = size
	}
}

func (c *ImageContext) FillRect(x, y, w, h float64) {
	if c.target == nil || w == 0 || h == 0 {
		return
	}
	if g, ok := c.state.fill.(*Gradient); ok {
		c.fillGradientRect(g, x, y, w, h)
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(c.state.geoM)
	op.ColorScale = c.state.fill.ColorAt(x, y).colorScale()
	c.target.DrawImage(whitePixel, &op)
}

// fillGradientRect rasterizes the gradient over the rect in user space and
// draws the result through the current transform.
func (c *ImageContext) fillGradientRect(g *Gradient, x, y, w, h float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	key := gradientKey{version: g.version, x: x, y: y, w: w, h: h}
	r, ok := c.gradients[g]
	if !ok || r.key != key {
		img := rasterizeGradient(g, x, y, w, h)
		if ok {
			r.img.Deallocate()
		}
		r = &gradientRaster{key: key, img: img}
		c.gradients[g] = r
	}
	r.used = true
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(c.state.geoM)
	c.target.DrawImage(r.img, &op)
}

// rasterizeGradient samples g at pixel centers over the rect.
func rasterizeGradient(g *Gradient, x, y, w, h float64) *ebiten.Image {
	pw, ph := int(math.Ceil(w)), int(math.Ceil(h))
	pix := make([]byte, 4*pw*ph)
	for j := 0; j < ph; j++ {
		for i := 0; i < pw; i++ {
			rgba := g.ColorAt(x+float64(i)+0.5, y+float64(j)+0.5).toRGBA()
			o := 4 * (j*pw + i)
			pix[o], pix[o+1], pix[o+2], pix[o+3] = rgba.R, rgba.G, rgba.B, rgba.A
		}
	}
	img := ebiten.NewImage(pw, ph)
	img.WritePixels(pix)
	return img
}

// StrokeRect outlines the rect with four transformed lines.
func (c *ImageContext) StrokeRect(x, y, w, h float64) {
	if c.target == nil {
		return
	}
	m := c.state.geoM
	x0, y0 := m.Apply(x, y)
	x1, y1 := m.Apply(x+w, y)
	x2, y2 := m.Apply(x+w, y+h)
	x3, y3 := m.Apply(x, y+h)
	clr := c.state.stroke.ColorAt(x, y).toRGBA()
	lw := float32(c.state.lineWidth)
	vector.StrokeLine(c.target, float32(x0), float32(y0), float32(x1), float32(y1), lw, clr, true)
	vector.StrokeLine(c.target, float32(x1), float32(y1), float32(x2), float32(y2), lw, clr, true)
	vector.StrokeLine(c.target, float32(x2), float32(y2), float32(x3), float32(y3), lw, clr, true)
	vector.StrokeLine(c.target, float32(x3), float32(y3), float32(x0), float32(y0), lw, clr, true)
}

// ClearRect clears the device-space bounding box of the transformed rect.
func (c *ImageContext) ClearRect(x, y, w, h float64) {
	if c.target == nil {
		return
	}
	m := c.state.geoM
	x0, y0 := m.Apply(x, y)
	x1, y1 := m.Apply(x+w, y)
	x2, y2 := m.Apply(x+w, y+h)
	x3, y3 := m.Apply(x, y+h)
	r := image.Rect(
		int(math.Floor(math.Min(math.Min(x0, x1), math.Min(x2, x3)))),
		int(math.Floor(math.Min(math.Min(y0, y1), math.Min(y2, y3)))),
		int(math.Ceil(math.Max(math.Max(x0, x1), math.Max(x2, x3)))),
		int(math.Ceil(math.Max(math.Max(y0, y1), math.Max(y2, y3)))),
	).Intersect(c.target.Bounds())
	if r.Empty() {
		return
	}
	if r == c.target.Bounds() {
		c.target.Clear()
		return
	}
	c.target.SubImage(r).(*ebiten.Image).Clear()
}

func (c *ImageContext) FillText(s string, x, y float64) {
	if c.target == nil || s == "" {
		return
	}
	face := c.face()
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(c.state.geoM)
	op.ColorScale = c.state.fill.ColorAt(x, y).colorScale()
	text.Draw(c.target, s, face, op)
}

func (c *ImageContext) MeasureText(s string) (w, h float64) {
	face := c.face()
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, c.state.fontSize)
}

func (c *ImageContext) CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return NewLinearGradient(x0, y0, x1, y1)
}

func (c *ImageContext) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

func (c *ImageContext) Size() (w, h float64) {
	if c.target == nil {
		return 0, 0
	}
	b := c.target.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// face returns the Go Regular face at the current font size.
func (c *ImageContext) face() *text.GoTextFace {
	if f, ok := c.faces[c.state.fontSize]; ok {
		return f
	}
	src, err := defaultFaceSource()
	if err != nil {
		Logger().Warn("load default font", "err", err)
		return nil
	}
	f := &text.GoTextFace{Source: src, Size: c.state.fontSize}
	c.faces[c.state.fontSize] = f
	return f
}

var faceSource *text.GoTextFaceSource

func defaultFaceSource() (*text.GoTextFaceSource, error) {
	if faceSource != nil {
		return faceSource, nil
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	faceSource = src
	return src, nil
}
