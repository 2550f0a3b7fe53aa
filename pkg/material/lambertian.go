package material

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// scatterLambertian always scatters, towards the normal plus a random unit offset
func (m Material) scatterLambertian(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The offset can cancel the normal exactly; fall back to the normal itself
	if scatterDirection.LengthSquared() < 1e-16 {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   core.NewRay(hit.Point, scatterDirection),
	}, true
}
