package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

// NewDefaultScene creates a small matte sphere resting on a huge ground
// sphere, flanked by fuzzy gold metal and glass, seen through a wide lens
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	center := core.NewPoint(3, 3, 2)
	lookAt := core.NewPoint(0, 0, -1)

	cameraConfig := geometry.CameraConfig{
		Center:        center,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      0.5,
		FocusDistance: center.DistanceTo(lookAt),
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = cameraOverrides[0]
	}

	s := New()
	s.SamplingConfig = SamplingConfig{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 64,
		MaxDepth:        32,
	}
	s.CameraConfig = cameraConfig

	s.Add(
		// smaller matte blue sphere in the center of the frame
		geometry.NewSphere(core.NewPoint(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		// huge matte green sphere as the ground
		geometry.NewSphere(core.NewPoint(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewPoint(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.5)),
		geometry.NewSphere(core.NewPoint(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
	)

	return s
}

// NewSimpleScene creates a single matte sphere straight ahead of a pinhole camera
func NewSimpleScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Center: core.NewPoint(0, 0, 0),
		LookAt: core.NewPoint(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60.0,
	}
	s.Add(geometry.NewSphere(core.NewPoint(0, 0, -2), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))))
	return s
}

// Builtin returns the built-in scene registered under id
func Builtin(id string) (*Scene, bool) {
	switch id {
	case "default":
		return NewDefaultScene(), true
	case "simple":
		return NewSimpleScene(), true
	default:
		return nil, false
	}
}
