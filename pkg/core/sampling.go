package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// Vec2 holds a pair of sample values
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; give each goroutine its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator for seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomUnitVector rejection-samples a point inside the unit sphere and
// projects it onto the sphere's surface
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		s := sampler.Get3D()
		// Map [0,1)³ to [-1,1)³
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		lengthSq := p.LengthSquared()
		// Reject the outside and the degenerate centre, which has no direction
		if lengthSq < 1.0 && lengthSq > 1e-160 {
			return p.Normalize()
		}
	}
}

// RandomInUnitDisk rejection-samples a point in the unit disk on the z=0 plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
