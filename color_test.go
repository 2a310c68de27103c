package oktay2d

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{1, 0, 0, 1}},
		{"#0F0", Color{0, 1, 0, 1}},
		{"#00000080", Color{0, 0, 0, 128.0 / 255}},
		{"#fff0", Color{1, 1, 1, 0}},
		{"rgb(255, 0, 255)", Color{1, 0, 1, 1}},
		{"rgba(0,0,255,0.5)", Color{0, 0, 1, 0.5}},
		{"red", Color{1, 0, 0, 1}},
		{"  White ", Color{1, 1, 1, 1}},
		{"transparent", Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if !approxEqual(got.R, tt.want.R, 1e-9) || !approxEqual(got.G, tt.want.G, 1e-9) ||
				!approxEqual(got.B, tt.want.B, 1e-9) || !approxEqual(got.A, tt.want.A, 1e-9) {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#ggg", "rgb(1,2)", "rgba(1,2,3)", "rgb(a,b,c)", "rgb(1,2,3", "notacolor"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseColor(%q) err = %v, want ErrInvalidArgument", in, err)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseColor did not panic")
		}
	}()
	MustParseColor("bogus")
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if c.R != 127 || c.G != 63 || c.B != 0 || c.A != 127 {
		t.Errorf("toRGBA = %v, want {127 63 0 127}", c)
	}
}
