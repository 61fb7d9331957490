package core

import (
	"image/color"
	"testing"
)

func TestMix_Endpoints(t *testing.T) {
	colors := []Color{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{1, 128, 254},
		{50, 50, 50},
	}

	for _, a := range colors {
		for _, b := range colors {
			if got := Mix(a, b, 1.0); got != a {
				t.Errorf("Mix(%v, %v, 1) = %v, want %v", a, b, got, a)
			}
			if got := Mix(a, b, 0.0); got != b {
				t.Errorf("Mix(%v, %v, 0) = %v, want %v", a, b, got, b)
			}
		}
	}
}

func TestMix_Blends(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Color
		weight   float64
		expected Color
	}{
		{"half red half blue", Color{255, 0, 0}, Color{0, 0, 255}, 0.5, Color{127, 0, 127}},
		{"quarter white over black", Color{255, 255, 255}, Color{0, 0, 0}, 0.25, Color{63, 63, 63}},
		{"weight above one clamps", Color{10, 20, 30}, Color{200, 200, 200}, 1.5, Color{10, 20, 30}},
		{"weight below zero clamps", Color{10, 20, 30}, Color{200, 200, 200}, -0.5, Color{200, 200, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mix(tt.a, tt.b, tt.weight); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMix_StaysBetweenInputs(t *testing.T) {
	a := Color{255, 0, 200}
	b := Color{0, 255, 100}
	for i := 0; i <= 100; i++ {
		w := float64(i) / 100
		got := Mix(a, b, w)
		channels := [][3]int{
			{int(a.R), int(b.R), int(got.R)},
			{int(a.G), int(b.G), int(got.G)},
			{int(a.B), int(b.B), int(got.B)},
		}
		for _, ch := range channels {
			lo, hi := min(ch[0], ch[1]), max(ch[0], ch[1])
			// truncation may land one below the lower input
			if ch[2] < lo-1 || ch[2] > hi {
				t.Fatalf("Mix(%v, %v, %f) = %v, channel outside [%d,%d]", a, b, w, got, lo, hi)
			}
		}
	}
}

func TestColor_RGBA(t *testing.T) {
	c := NewColor(255, 128, 0)
	want := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if c.ToRGBA() != want {
		t.Errorf("Expected %v, got %v", want, c.ToRGBA())
	}

	r, g, b, a := c.RGBA()
	wr, wg, wb, wa := want.RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Errorf("RGBA mismatch: got (%d,%d,%d,%d), want (%d,%d,%d,%d)", r, g, b, a, wr, wg, wb, wa)
	}
}
