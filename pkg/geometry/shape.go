package geometry

import (
	"fmt"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Kind identifies a shape variant
type Kind int

const (
	KindSphere Kind = iota
)

// String returns the variant name used in scene files
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "Sphere"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is a closed set of surfaces carrying an attached material.
// Only the geometry fields relevant to Kind are meaningful.
type Shape struct {
	Kind     Kind
	Center   core.Point // Sphere
	Radius   float64    // Sphere
	Material material.Material
}

// Hit tests the ray against the shape
func (s Shape) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch s.Kind {
	case KindSphere:
		return s.hitSphere(ray, tMin, tMax)
	default:
		return material.HitRecord{}, false
	}
}

// Validate reports invalid geometry or material parameters
func (s Shape) Validate() error {
	switch s.Kind {
	case KindSphere:
		if err := s.validateSphere(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown shape kind %v", s.Kind)
	}
	if err := s.Material.Validate(); err != nil {
		return fmt.Errorf("%v material: %w", s.Kind, err)
	}
	return nil
}
