package renderer

import (
	"image"
	"math"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	NumChunks       int           // Number of chunk tasks executed
	NumWorkers      int           // Number of parallel workers
	Duration        time.Duration // Wall-clock render time
}

// merge folds the counts of a finished chunk into the totals
func (rs *RenderStats) merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
}

// AverageSamples returns the mean number of samples per rendered pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for variance
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the sample variance of the luminance
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	return math.Max(0, meanSq-mean*mean)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an
// 8-bit image, in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(pixels)
}
