package material

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// NewMetal creates a metallic material with specular reflection.
// Fuzz outside [0, 1] is rejected by Validate, not clamped.
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: fuzz}
}

// scatterMetal mirrors the incoming direction, perturbed by fuzz
func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)

	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzz))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// A reflection pointing into the surface is absorbed
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   scattered,
	}, true
}
