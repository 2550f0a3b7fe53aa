package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// JSONScene is the on-disk scene format. Every omitted field takes the
// default from scene.DefaultSamplingConfig or geometry.DefaultCameraConfig.
type JSONScene struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Config      *JSONConfig  `json:"config,omitempty"`
	Camera      *JSONCamera  `json:"camera,omitempty"`
	Objects     []JSONObject `json:"objects"`
}

// JSONConfig holds the render configuration
type JSONConfig struct {
	Width   *int `json:"width,omitempty"`
	Height  *int `json:"height,omitempty"`
	Samples *int `json:"samples,omitempty"`
	Depth   *int `json:"depth,omitempty"`
}

// JSONCamera holds the camera configuration
type JSONCamera struct {
	Origin        *JSONVec3 `json:"origin,omitempty"`
	Target        *JSONVec3 `json:"target,omitempty"`
	Up            *JSONVec3 `json:"up,omitempty"`
	Fov           *float64  `json:"fov,omitempty"`
	Aspect        *float64  `json:"aspect,omitempty"`
	Aperture      *float64  `json:"aperture,omitempty"`
	FocusDistance *float64  `json:"focus_distance,omitempty"`
}

// JSONObject is a tagged surface
type JSONObject struct {
	Type     string        `json:"type"`
	Centre   *JSONVec3     `json:"centre,omitempty"`
	Center   *JSONVec3     `json:"center,omitempty"`
	Radius   float64       `json:"radius"`
	Material *JSONMaterial `json:"material,omitempty"`
}

// JSONMaterial is a tagged material
type JSONMaterial struct {
	Type            string     `json:"type"`
	Albedo          *JSONColor `json:"albedo,omitempty"`
	Fuzz            float64    `json:"fuzz,omitempty"`
	RefractiveIndex float64    `json:"refractive_index,omitempty"`
}

// JSONVec3 is a point or direction
type JSONVec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// JSONColor is a linear RGB triple
type JSONColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// defaultAlbedo is used by diffuse and metal materials that omit one
var defaultAlbedo = core.NewVec3(0.5, 0.5, 0.5)

// LoadScene reads, converts and validates a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene and validates it
func ParseScene(r io.Reader) (*scene.Scene, error) {
	var raw JSONScene
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	s, err := raw.ToScene()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ToScene converts the file representation, filling in defaults
func (js JSONScene) ToScene() (*scene.Scene, error) {
	s := scene.New()
	if js.Config != nil {
		js.Config.apply(&s.SamplingConfig)
	}
	if js.Camera != nil {
		js.Camera.apply(&s.CameraConfig)
	}

	for i, obj := range js.Objects {
		shape, err := obj.toShape()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape)
	}
	return s, nil
}

func (c JSONConfig) apply(config *scene.SamplingConfig) {
	if c.Width != nil {
		config.Width = *c.Width
	}
	if c.Height != nil {
		config.Height = *c.Height
	}
	if c.Samples != nil {
		config.SamplesPerPixel = *c.Samples
	}
	if c.Depth != nil {
		config.MaxDepth = *c.Depth
	}
}

func (c JSONCamera) apply(config *geometry.CameraConfig) {
	if c.Origin != nil {
		config.Center = c.Origin.point()
	}
	if c.Target != nil {
		config.LookAt = c.Target.point()
	}
	if c.Up != nil {
		config.Up = c.Up.vec3()
	}
	if c.Fov != nil {
		config.VFov = *c.Fov
	}
	if c.Aspect != nil {
		config.AspectRatio = *c.Aspect
	}
	if c.Aperture != nil {
		config.Aperture = *c.Aperture
	}
	if c.FocusDistance != nil {
		config.FocusDistance = *c.FocusDistance
	}
}

func (o JSONObject) toShape() (geometry.Shape, error) {
	mat := material.NewLambertian(defaultAlbedo)
	if o.Material != nil {
		var err error
		if mat, err = o.Material.toMaterial(); err != nil {
			return geometry.Shape{}, err
		}
	}

	switch strings.ToLower(o.Type) {
	case "sphere":
		center := o.Centre
		if center == nil {
			center = o.Center
		}
		if center == nil {
			return geometry.Shape{}, fmt.Errorf("sphere is missing its centre")
		}
		return geometry.NewSphere(center.point(), o.Radius, mat), nil
	case "":
		return geometry.Shape{}, fmt.Errorf("object is missing its type")
	default:
		return geometry.Shape{}, fmt.Errorf("unknown object type %q", o.Type)
	}
}

func (m JSONMaterial) toMaterial() (material.Material, error) {
	albedo := defaultAlbedo
	if m.Albedo != nil {
		albedo = core.NewVec3(m.Albedo.R, m.Albedo.G, m.Albedo.B)
	}

	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric", "dialectric":
		return material.NewDielectric(m.RefractiveIndex), nil
	case "":
		return material.Material{}, fmt.Errorf("material is missing its type")
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func (v JSONVec3) point() core.Point {
	return core.NewPoint(v.X, v.Y, v.Z)
}

func (v JSONVec3) vec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// FromScene converts a scene back into its file representation
func FromScene(s *scene.Scene) JSONScene {
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	samples, depth := s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth
	cam := s.CameraConfig
	fov, aspect, aperture, focus := cam.VFov, cam.AspectRatio, cam.Aperture, cam.FocusDistance

	js := JSONScene{
		Config: &JSONConfig{Width: &width, Height: &height, Samples: &samples, Depth: &depth},
		Camera: &JSONCamera{
			Origin:        &JSONVec3{cam.Center.X, cam.Center.Y, cam.Center.Z},
			Target:        &JSONVec3{cam.LookAt.X, cam.LookAt.Y, cam.LookAt.Z},
			Up:            &JSONVec3{cam.Up.X, cam.Up.Y, cam.Up.Z},
			Fov:           &fov,
			Aspect:        &aspect,
			Aperture:      &aperture,
			FocusDistance: &focus,
		},
		Objects: make([]JSONObject, 0, len(s.Shapes)),
	}

	for _, shape := range s.Shapes {
		m := shape.Material
		jm := &JSONMaterial{Type: m.Kind.String()}
		switch m.Kind {
		case material.KindLambertian:
			jm.Albedo = &JSONColor{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		case material.KindMetal:
			jm.Albedo = &JSONColor{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
			jm.Fuzz = m.Fuzz
		case material.KindDielectric:
			jm.RefractiveIndex = m.RefractiveIndex
		}
		js.Objects = append(js.Objects, JSONObject{
			Type:     shape.Kind.String(),
			Centre:   &JSONVec3{shape.Center.X, shape.Center.Y, shape.Center.Z},
			Radius:   shape.Radius,
			Material: jm,
		})
	}
	return js
}

// WriteScene encodes s as indented JSON
func WriteScene(w io.Writer, s *scene.Scene) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(FromScene(s)); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return nil
}
