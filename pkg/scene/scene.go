package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

// ErrInvalidScene wraps every scene validation failure
var ErrInvalidScene = errors.New("invalid scene")

// MaxImagePixels bounds width*height so frame allocation cannot overflow
const MaxImagePixels = 1 << 26

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the values used for any field a scene omits
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 8,
		MaxDepth:        8,
	}
}

// AspectRatio returns width/height
func (c SamplingConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Validate requires every field to be positive and the image to hold at
// most MaxImagePixels pixels
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("width must be positive, got %d", c.Width)
	case c.Height <= 0:
		return fmt.Errorf("height must be positive, got %d", c.Height)
	case c.Width > MaxImagePixels/c.Height:
		return fmt.Errorf("image %dx%d exceeds %d pixels", c.Width, c.Height, MaxImagePixels)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Scene contains all the elements needed for rendering.
// It must not be modified once rendering has started.
type Scene struct {
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene, in insertion order
}

// New creates an empty scene with default sampling and camera configuration
func New() *Scene {
	return &Scene{
		SamplingConfig: DefaultSamplingConfig(),
		CameraConfig:   geometry.DefaultCameraConfig(),
		Shapes:         make([]geometry.Shape, 0),
	}
}

// Add appends shapes and returns the scene for chaining
func (s *Scene) Add(shapes ...geometry.Shape) *Scene {
	s.Shapes = append(s.Shapes, shapes...)
	return s
}

// NearestHit returns the closest intersection in (tMin, tMax) across all
// shapes
func (s *Scene) NearestHit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	hit, index := s.NearestHitIndex(ray, tMin, tMax)
	return hit, index >= 0
}

// NearestHitIndex is NearestHit that also reports which shape was hit, or
// -1 on a miss. Each hit tightens the upper bound for the shapes after it.
func (s *Scene) NearestHitIndex(ray core.Ray, tMin, tMax float64) (material.HitRecord, int) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	closestIndex := -1

	for i, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
			closestIndex = i
		}
	}

	return closestHit, closestIndex
}

// Hit implements geometry.Hittable
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	return s.NearestHit(ray, tMin, tMax)
}

// Validate checks the whole scene before any rendering starts
func (s *Scene) Validate() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("%w: sampling config: %w", ErrInvalidScene, err)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("%w: camera: %w", ErrInvalidScene, err)
	}
	for i, shape := range s.Shapes {
		if err := shape.Validate(); err != nil {
			return fmt.Errorf("%w: shape %d: %w", ErrInvalidScene, i, err)
		}
	}
	return nil
}

// NewCamera builds the scene's camera against its image aspect ratio
func (s *Scene) NewCamera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig, s.SamplingConfig.AspectRatio())
}
