package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"quarter is gamma corrected to half", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{127, 127, 127, 255}},
		{"overexposed clamps", core.NewVec3(4, 2, 1.5), color.RGBA{255, 255, 255, 255}},
		{"NaN maps to zero", core.NewVec3(math.NaN(), 1, 0), color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGBA(tt.input); got != tt.expected {
				t.Errorf("ToRGBA(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFrame_RowMajorTopFirst(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.Set(2, 0, core.NewVec3(1, 0, 0))
	frame.Set(0, 1, core.NewVec3(0, 0, 1))

	if frame.Pixels[2] != core.NewVec3(1, 0, 0) {
		t.Errorf("pixel (2,0) should be stored at index 2, got %v", frame.Pixels[2])
	}
	if frame.Pixels[3] != core.NewVec3(0, 0, 1) {
		t.Errorf("pixel (0,1) should be stored at index 3, got %v", frame.Pixels[3])
	}

	img := frame.Image()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected image bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("image (2,0) = %v, want red", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("image (0,1) = %v, want blue", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("unset pixel = %v, want opaque black", got)
	}
}
