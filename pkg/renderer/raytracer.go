package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// HitEpsilon is the minimum ray parameter accepted as a hit, for primary and
// scattered rays alike. It keeps scattered rays from re-hitting their origin.
const HitEpsilon = 0.001

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// Raytracer computes pixel colors for a validated, immutable scene
type Raytracer struct {
	scene  *scene.Scene
	camera *geometry.Camera
	config scene.SamplingConfig
	logger core.Logger
}

// NewRaytracer validates the scene and builds its camera. A nil logger
// discards output.
func NewRaytracer(s *scene.Scene, logger core.Logger) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil scene", scene.ErrInvalidScene)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:  s,
		camera: s.NewCamera(),
		config: s.SamplingConfig,
		logger: logger,
	}, nil
}

// Config returns the sampling configuration being rendered
func (rt *Raytracer) Config() scene.SamplingConfig {
	return rt.config
}

// BackgroundColor blends white at the horizon into sky blue at the zenith,
// keyed on the vertical component of the unit direction
func BackgroundColor(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Lerp(skyBlue, t)
}

// RayColor traces r at the given bounce depth. Rays that miss return the
// background; absorbed rays and rays past the depth limit return black.
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := rt.scene.NearestHit(r, HitEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundColor(r)
	}

	if depth >= rt.config.MaxDepth {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(r, hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth+1, sampler))
}

// RenderPixel averages SamplesPerPixel jittered samples for pixel (i, j),
// where row 0 is the top of the image. The result is linear, before gamma.
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	rt.samplePixel(i, j, &ps, sampler)
	return ps.GetColor()
}

// samplePixel adds SamplesPerPixel samples for pixel (i, j) to ps
func (rt *Raytracer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) {
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)
	u := float64(i) / width
	v := float64(rt.config.Height-j) / height

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := u + jitter.X/width
		t := v + jitter.Y/height

		ray := rt.camera.GetRay(s, t, sampler)
		ps.AddSample(rt.RayColor(ray, 0, sampler))
	}
}
