package graphics

import "testing"

func TestOffsetArithmetic(t *testing.T) {
	a := Offset{X: 3, Y: 4}
	if got := a.Distance(); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
	if got := a.Add(Offset{X: 1, Y: 1}); !got.Equal(Offset{X: 4, Y: 5}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(Offset{X: 1, Y: 1}); !got.Equal(Offset{X: 2, Y: 3}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Scale(2); !got.Equal(Offset{X: 6, Y: 8}) {
		t.Errorf("Scale() = %v", got)
	}
}

func TestRect(t *testing.T) {
	r := RectFromLTWH(10, 20, 100, 50)
	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("size = %v", r.Size())
	}
	if c := r.Center(); !c.Equal(Offset{X: 60, Y: 45}) {
		t.Errorf("Center() = %v", c)
	}
	if !r.Contains(Offset{X: 10, Y: 20}) || r.Contains(Offset{X: 110, Y: 20}) {
		t.Error("Contains should include left/top and exclude right")
	}
}

func TestPixelTransform(t *testing.T) {
	tests := []struct {
		name    string
		density float64
		in      Offset
		want    Offset
	}{
		{"identity", 1, Offset{X: 10, Y: 20}, Offset{X: 10, Y: 20}},
		{"xxhdpi", 3, Offset{X: 30, Y: 60}, Offset{X: 10, Y: 20}},
		{"invalid density", 0, Offset{X: 7, Y: 7}, Offset{X: 7, Y: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := NewPixelTransform(tt.density)
			if got := pt.Point(tt.in); !got.Equal(tt.want) {
				t.Errorf("Point(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got := pt.Vector(tt.in); !got.Equal(tt.want) {
				t.Errorf("Vector(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	var zero PixelTransform
	if zero.FromPixels(5) != 5 || zero.Density() != 1 {
		t.Error("zero PixelTransform should be identity")
	}
	if got := NewPixelTransform(2).FromPixels(10); got != 5 {
		t.Errorf("FromPixels(10) = %v, want 5", got)
	}
}
