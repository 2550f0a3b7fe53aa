package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, mat material.Material) Shape {
	return Shape{
		Kind:     KindSphere,
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// hitSphere solves |origin + t*dir - center|² = r² and reports the smaller
// root inside (tMin, tMax), falling back to the larger one
func (s Shape) hitSphere(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return material.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return material.HitRecord{}, false
		}
	}

	point := ray.At(root)
	// (p - c)/r is already unit length; normalize anyway to absorb rounding
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius).Normalize()

	return material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   normal,
		Material: s.Material,
	}, true
}

func (s Shape) validateSphere() error {
	if !s.Center.IsFinite() {
		return fmt.Errorf("sphere center must be finite, got %v", s.Center)
	}
	if math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) || s.Radius <= 0 {
		return fmt.Errorf("sphere radius must be positive and finite, got %v", s.Radius)
	}
	return nil
}
