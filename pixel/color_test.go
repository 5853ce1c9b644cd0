package pixel

import (
	"image/color"
	"testing"
)

func TestCRGB16(t *testing.T) {
	tests := []struct {
		Name    string
		Color   CRGB16
		R, G, B uint32
	}{
		{"black", Black, 0x0000, 0x0000, 0x0000},
		{"white", White, 0xffff, 0xffff, 0xffff},
		{"red", Red, 0xffff, 0x0000, 0x0000},
		{"green", Green, 0x0000, 0xffff, 0x0000},
		{"blue", Blue, 0x0000, 0x0000, 0xffff},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			r, g, b, a := test.Color.RGBA()
			if r != test.R {
				it.Errorf("expected red to be %#04x, got %#04x", test.R, r)
			}
			if g != test.G {
				it.Errorf("expected green to be %#04x, got %#04x", test.G, g)
			}
			if b != test.B {
				it.Errorf("expected blue to be %#04x, got %#04x", test.B, b)
			}
			if a != 0xffff {
				it.Errorf("expected opaque alpha, got %#04x", a)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	tests := []struct {
		R, G, B uint8
		Want    CRGB16
	}{
		{0xff, 0x00, 0x00, Red},
		{0x00, 0xff, 0x00, Green},
		{0x00, 0x00, 0xff, Blue},
		{0xff, 0xff, 0xff, White},
		{0x07, 0x03, 0x07, Black},
		{0x08, 0x04, 0x08, CRGB16{0x0821}},
	}
	for _, test := range tests {
		if v := RGB(test.R, test.G, test.B); v != test.Want {
			t.Errorf("RGB(%#02x, %#02x, %#02x): expected %#04x, got %#04x", test.R, test.G, test.B, test.Want.V, v.V)
		}
	}
}

func TestCRGB16Model(t *testing.T) {
	for v := 0; v <= 0xffff; v += 0x0123 {
		c := CRGB16{uint16(v)}
		if got := CRGB16Model.Convert(c); got != c {
			t.Fatalf("CRGB16 %#04x did not convert to itself, got %#+v", v, got)
		}
		// A round trip through 16-bit RGBA keeps every bit.
		r, g, b, a := c.RGBA()
		rgba := color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
		if got := Convert(rgba); got != c {
			t.Fatalf("RGBA64 round trip of %#04x returned %#04x", v, got.V)
		}
	}

	if got := Convert(color.RGBA{R: 0xff, A: 0xff}); got != Red {
		t.Errorf("expected red, got %#04x", got.V)
	}
	if got := Convert(color.Gray{Y: 0xff}); got != White {
		t.Errorf("expected white, got %#04x", got.V)
	}
}
