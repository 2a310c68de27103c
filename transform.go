package oktay2d

import (
	"fmt"
	"math"
)

// Transform is a 2D affine transform in the component order of the canvas
// transform(a, b, c, d, e, f) call:
//
//	| ScaleX  SkewX  TranslateX |
//	| SkewY   ScaleY TranslateY |
//	| 0       0      1          |
type Transform struct {
	ScaleX     float64 // a: horizontal scaling, 1 means no scaling
	SkewY      float64 // b: vertical skewing
	SkewX      float64 // c: horizontal skewing
	ScaleY     float64 // d: vertical scaling, 1 means no scaling
	TranslateX float64 // e: horizontal translation
	TranslateY float64 // f: vertical translation
}

// IdentityTransform returns a Transform that leaves coordinates unchanged.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Matrix returns the transform as [a, b, c, d, tx, ty].
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.ScaleX, t.SkewY, t.SkewX, t.ScaleY, t.TranslateX, t.TranslateY}
}

func (t Transform) toAffine() affine {
	return affine(t.Matrix())
}

// validate reports ErrInvalidArgument if any component is NaN or infinite.
func (t Transform) validate() error {
	for i, v := range t.Matrix() {
		if !isFinite(v) {
			return fmt.Errorf("transform component %d is %v: %w", i, v, ErrInvalidArgument)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// affine is a matrix in Matrix order, [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
type affine [6]float64

// identityAffine leaves points unchanged.
var identityAffine = affine{1, 0, 0, 1, 0, 0}

func translateAffine(x, y float64) affine { return affine{1, 0, 0, 1, x, y} }
func scaleAffine(sx, sy float64) affine   { return affine{sx, 0, 0, sy, 0, 0} }

// then returns m followed by next in canvas order: next acts on coordinates
// first, as a later ctx.transform call would.
func (m affine) then(next affine) affine {
	var out affine
	out[0] = m[0]*next[0] + m[2]*next[1]
	out[1] = m[1]*next[0] + m[3]*next[1]
	out[2] = m[0]*next[2] + m[2]*next[3]
	out[3] = m[1]*next[2] + m[3]*next[3]
	out[4] = m[0]*next[4] + m[2]*next[5] + m[4]
	out[5] = m[1]*next[4] + m[3]*next[5] + m[5]
	return out
}

// inverse returns the inverse matrix. ok is false for a singular matrix.
func (m affine) inverse() (inv affine, ok bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return identityAffine, false
	}
	inv[0] = m[3] / det
	inv[1] = -m[1] / det
	inv[2] = -m[2] / det
	inv[3] = m[0] / det
	inv[4] = -(inv[0]*m[4] + inv[2]*m[5])
	inv[5] = -(inv[1]*m[4] + inv[3]*m[5])
	return inv, true
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
