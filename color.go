package oktay2d

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS-style color string. Supported forms are hex
// ("#rgb", "#rgba", "#rrggbb", "#rrggbbaa"), "rgb(r, g, b)",
// "rgba(r, g, b, a)" with channels in 0-255 and alpha in 0-1, the SVG 1.1
// color keywords and "transparent".
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return Color{}, fmt.Errorf("parse color: empty string: %w", ErrInvalidArgument)
	case v == "transparent":
		return ColorTransparent, nil
	case v[0] == '#':
		return parseHexColor(s, v[1:])
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFuncColor(s, v)
	}
	if c, ok := colornames.Map[v]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("parse color %q: unknown color: %w", s, ErrInvalidArgument)
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level color constants in examples and tests.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHexColor(orig, hex string) (Color, error) {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return Color{}, fmt.Errorf("parse color %q: bad hex length: %w", orig, ErrInvalidArgument)
	}
	for _, r := range hex {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return Color{}, fmt.Errorf("parse color %q: bad hex digit %q: %w", orig, r, ErrInvalidArgument)
		}
	}
	c := gg.Hex(hex)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func parseFuncColor(orig, v string) (Color, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") {
		return Color{}, fmt.Errorf("parse color %q: missing ')': %w", orig, ErrInvalidArgument)
	}
	name := v[:open]
	parts := strings.Split(v[open+1:len(v)-1], ",")
	want := 3
	if name == "rgba" {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("parse color %q: want %d components, got %d: %w", orig, want, len(parts), ErrInvalidArgument)
	}

	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: component %d: %w", orig, i, ErrInvalidArgument)
		}
		if i < 3 {
			f /= 255
		}
		ch[i] = clamp01(f)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
