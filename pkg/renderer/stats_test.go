package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green, blue and black contribute 0.2126 + 0.7152 + 0.0722 + 0 = 1.0
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	if avg := CalculateAverageLuminance(img); math.Abs(avg-0.25) > 1e-4 {
		t.Errorf("Expected average luminance 0.25, got %f", avg)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	if avg := CalculateAverageLuminance(img); math.Abs(avg-1.0) > 1e-4 {
		t.Errorf("Expected average luminance 1.0, got %f", avg)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().IsZero() {
		t.Errorf("empty pixel should be black, got %v", ps.GetColor())
	}
	if ps.Variance() != 0 {
		t.Errorf("empty pixel should have zero variance, got %v", ps.Variance())
	}

	ps.AddSample(core.NewVec3(1, 1, 1))
	ps.AddSample(core.NewVec3(0, 0, 0))

	if got := ps.GetColor(); got.Subtract(core.NewVec3(0.5, 0.5, 0.5)).Length() > 1e-12 {
		t.Errorf("average color = %v, want (0.5, 0.5, 0.5)", got)
	}
	// Luminances 1 and 0: mean 0.5, variance 0.25
	if got := ps.Variance(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("variance = %v, want 0.25", got)
	}
	if ps.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", ps.SampleCount)
	}
}
