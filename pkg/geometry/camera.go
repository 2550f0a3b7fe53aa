package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig describes camera placement and lens
type CameraConfig struct {
	Center        core.Point // Camera position
	LookAt        core.Point // Point the camera is looking at
	Up            core.Vec3  // Up direction (usually (0,1,0))
	VFov          float64    // Vertical field of view in degrees
	AspectRatio   float64    // Width/height override (0 = derive from image size)
	Aperture      float64    // Lens diameter (0 = pinhole, no depth of field)
	FocusDistance float64    // Distance to the focal plane (0 = distance to LookAt)
}

// DefaultCameraConfig returns the camera used when a scene does not describe one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:   core.Origin(),
		LookAt:   core.NewPoint(0, 0, 1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     20.0,
		Aperture: 0.0,
	}
}

// ResolvedFocusDistance returns the focus distance, defaulting to the
// distance between Center and LookAt
func (c CameraConfig) ResolvedFocusDistance() float64 {
	if c.FocusDistance > 0 {
		return c.FocusDistance
	}
	return c.Center.DistanceTo(c.LookAt)
}

// Validate rejects configurations that would produce NaN rays
func (c CameraConfig) Validate() error {
	if !c.Center.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("camera vectors must be finite")
	}
	if c.Center == c.LookAt {
		return fmt.Errorf("camera center and look-at point coincide at %v", c.Center)
	}
	w := c.Center.Subtract(c.LookAt).Normalize()
	if c.Up.Cross(w).LengthSquared() < 1e-18 {
		return fmt.Errorf("camera up vector %v is zero or parallel to the view direction", c.Up)
	}
	if math.IsNaN(c.VFov) || c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("camera field of view must be in (0, 180) degrees, got %v", c.VFov)
	}
	if math.IsNaN(c.AspectRatio) || math.IsInf(c.AspectRatio, 0) || c.AspectRatio < 0 {
		return fmt.Errorf("camera aspect ratio must be positive or zero for automatic, got %v", c.AspectRatio)
	}
	if math.IsNaN(c.Aperture) || math.IsInf(c.Aperture, 0) || c.Aperture < 0 {
		return fmt.Errorf("camera aperture must be non-negative and finite, got %v", c.Aperture)
	}
	if math.IsNaN(c.FocusDistance) || math.IsInf(c.FocusDistance, 0) || c.FocusDistance < 0 {
		return fmt.Errorf("camera focus distance must be non-negative and finite, got %v", c.FocusDistance)
	}
	return nil
}

// Camera generates primary rays through a thin lens
type Camera struct {
	origin          core.Point
	lowerLeftCorner core.Point
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64
}

// NewCamera builds a camera from config. imageAspect (width/height) is used
// unless the config overrides it.
func NewCamera(config CameraConfig, imageAspect float64) *Camera {
	aspect := imageAspect
	if config.AspectRatio > 0 {
		aspect = config.AspectRatio
	}

	theta := mgl64.DegToRad(config.VFov)
	halfHeight := math.Tan(theta / 2)
	halfWidth := halfHeight * aspect
	focusDistance := config.ResolvedFocusDistance()

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth * focusDistance)
	vertical := v.Multiply(2 * halfHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Translate(u.Multiply(-halfWidth * focusDistance)).
		Translate(v.Multiply(-halfHeight * focusDistance)).
		Translate(w.Multiply(-focusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for image-plane coordinates (s, t), where (0,0) is
// the lower-left and (1,1) the upper-right of the frame. The origin is
// jittered across the lens for depth of field.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Translate(c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y)))
	}

	target := c.lowerLeftCorner.
		Translate(c.horizontal.Multiply(s)).
		Translate(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin))
}
