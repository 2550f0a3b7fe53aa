package material

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// NewDielectric creates a transparent material like glass (1.5) or water (1.33)
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// scatterDielectric reflects or refracts, choosing by Schlick's reflectance.
// Clear glass absorbs nothing, so it always scatters with white attenuation.
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	attenuation := core.NewVec3(1.0, 1.0, 1.0)
	direction := rayIn.Direction
	reflected := direction.Reflect(hit.Normal)

	// The stored normal points out of the surface, so a positive dot product
	// means the ray is leaving the material
	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	dirDotNormal := direction.Dot(hit.Normal)
	if dirDotNormal > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = m.RefractiveIndex
		cosine = m.RefractiveIndex * dirDotNormal / direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / m.RefractiveIndex
		cosine = -dirDotNormal / direction.Length()
	}

	scatterDirection := reflected
	if refracted, ok := direction.Refract(outwardNormal, niOverNt); ok {
		if sampler.Get1D() >= Reflectance(cosine, m.RefractiveIndex) {
			scatterDirection = refracted
		}
	}

	return ScatterResult{
		Attenuation: attenuation,
		Scattered:   core.NewRay(hit.Point, scatterDirection),
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
