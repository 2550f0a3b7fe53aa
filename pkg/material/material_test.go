package material

import (
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

// fixedSampler replays the same value for every draw
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value, f.value)
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

func TestMaterial_Validate(t *testing.T) {
	grey := core.NewVec3(0.5, 0.5, 0.5)

	tests := []struct {
		name        string
		material    Material
		expectError bool
	}{
		{"lambertian", NewLambertian(grey), false},
		{"lambertian black", NewLambertian(core.NewVec3(0, 0, 0)), false},
		{"lambertian albedo above one", NewLambertian(core.NewVec3(1.2, 0, 0)), true},
		{"lambertian negative albedo", NewLambertian(core.NewVec3(0, -0.1, 0)), true},
		{"lambertian NaN albedo", NewLambertian(core.NewVec3(0, 0, math.NaN())), true},
		{"metal mirror", NewMetal(grey, 0), false},
		{"metal fully fuzzy", NewMetal(grey, 1), false},
		{"metal fuzz above one", NewMetal(grey, 1.5), true},
		{"metal negative fuzz", NewMetal(grey, -0.1), true},
		{"metal bad albedo", NewMetal(core.NewVec3(2, 2, 2), 0.3), true},
		{"glass", NewDielectric(1.5), false},
		{"dielectric zero index", NewDielectric(0), true},
		{"dielectric negative index", NewDielectric(-1.5), true},
		{"dielectric infinite index", NewDielectric(math.Inf(1)), true},
		{"unknown kind", Material{Kind: Kind(99)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.material.Validate()
			if tt.expectError && err == nil {
				t.Errorf("Expected validation error for %v", tt.material)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error for %v: %v", tt.material, err)
			}
		})
	}
}

func TestMaterial_UnknownKindAbsorbs(t *testing.T) {
	m := Material{Kind: Kind(42)}
	ray := core.NewRay(core.NewPoint(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Point: core.Origin(), Normal: core.NewVec3(0, 0, 1), T: 1}

	if _, ok := m.Scatter(ray, hit, fixedSampler{0.5}); ok {
		t.Error("Unknown material kind should absorb")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindLambertian, "Lambertian"},
		{KindMetal, "Metal"},
		{KindDielectric, "Dielectric"},
		{Kind(7), "Kind(7)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}
