package material

import (
	"fmt"
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Kind identifies a material variant
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the variant name used in scene files
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "Lambertian"
	case KindMetal:
		return "Metal"
	case KindDielectric:
		return "Dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material is a closed set of shading behaviours. Only the fields relevant to
// Kind are meaningful; use the constructors rather than filling it by hand.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian, Metal
	Fuzz            float64   // Metal: 0.0 = perfect mirror, 1.0 = very fuzzy
	RefractiveIndex float64   // Dielectric
}

// Scatter decides how a ray arriving at hit leaves the surface. It returns
// false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(rayIn, hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// Validate reports the first parameter outside its valid range
func (m Material) Validate() error {
	switch m.Kind {
	case KindLambertian:
		return validateAlbedo(m.Albedo)
	case KindMetal:
		if err := validateAlbedo(m.Albedo); err != nil {
			return err
		}
		if math.IsNaN(m.Fuzz) || m.Fuzz < 0 || m.Fuzz > 1 {
			return fmt.Errorf("metal fuzz must be in [0, 1], got %v", m.Fuzz)
		}
		return nil
	case KindDielectric:
		if math.IsNaN(m.RefractiveIndex) || math.IsInf(m.RefractiveIndex, 0) || m.RefractiveIndex <= 0 {
			return fmt.Errorf("dielectric refractive index must be positive and finite, got %v", m.RefractiveIndex)
		}
		return nil
	default:
		return fmt.Errorf("unknown material kind %v", m.Kind)
	}
}

// String describes the material and its parameters
func (m Material) String() string {
	switch m.Kind {
	case KindLambertian:
		return fmt.Sprintf("Lambertian(albedo=%v)", m.Albedo)
	case KindMetal:
		return fmt.Sprintf("Metal(albedo=%v, fuzz=%g)", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("Dielectric(ri=%g)", m.RefractiveIndex)
	default:
		return m.Kind.String()
	}
}

func validateAlbedo(albedo core.Vec3) error {
	for _, c := range []float64{albedo.X, albedo.Y, albedo.Z} {
		if math.IsNaN(c) || c < 0 || c > 1 {
			return fmt.Errorf("albedo components must be in [0, 1], got %v", albedo)
		}
	}
	return nil
}
