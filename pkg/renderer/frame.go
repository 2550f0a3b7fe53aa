package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Frame is the render output: linear colors in row-major order, top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color of pixel (i, j), with j = 0 the top row
func (f *Frame) At(i, j int) core.Vec3 {
	return f.Pixels[j*f.Width+i]
}

// Set stores the linear color of pixel (i, j)
func (f *Frame) Set(i, j int, c core.Vec3) {
	f.Pixels[j*f.Width+i] = c
}

// Image gamma-corrects and quantizes the frame into an 8-bit RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			img.SetRGBA(i, j, ToRGBA(f.At(i, j)))
		}
	}
	return img
}

// ToRGBA applies gamma 2 and maps each channel from [0,1] to [0,255]
func ToRGBA(c core.Vec3) color.RGBA {
	c = c.GammaCorrect(2.0)
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(channel float64) uint8 {
	if math.IsNaN(channel) {
		return 0
	}
	return uint8(255.99 * mgl64.Clamp(channel, 0, 1))
}
