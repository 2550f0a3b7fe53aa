package geometry

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Hittable is anything a ray can be intersected with. Implementations report
// only hits with tMin < t < tMax.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
