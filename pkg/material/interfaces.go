package material

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// HitRecord contains information about a ray-object intersection.
// It is built fresh for every successful intersection test and never mutated.
type HitRecord struct {
	T        float64    // Parameter t along the ray
	Point    core.Point // Point of intersection
	Normal   core.Vec3  // Unit outward surface normal at intersection
	Material Material   // Material of the hit object
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation core.Vec3 // Color attenuation
	Scattered   core.Ray  // The scattered ray
}
