package loaders

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/scene"
)

func TestParseScene_Full(t *testing.T) {
	input := `{
		"config": {"width": 200, "height": 100, "samples": 4, "depth": 3},
		"camera": {
			"origin": {"x": 0, "y": 0, "z": 1},
			"target": {"x": 0, "y": 0, "z": -1},
			"up": {"x": 0, "y": 1, "z": 0},
			"fov": 45,
			"aperture": 0.1,
			"aspect": 2,
			"focus_distance": 3
		},
		"objects": [
			{"type": "Sphere", "centre": {"x": 0, "y": 0, "z": -1}, "radius": 0.5,
			 "material": {"type": "Lambertian", "albedo": {"r": 0.1, "g": 0.2, "b": 0.3}}},
			{"type": "Sphere", "center": {"x": 1, "y": 0, "z": -1}, "radius": 0.5,
			 "material": {"type": "Metal", "albedo": {"r": 0.8, "g": 0.8, "b": 0.8}, "fuzz": 0.3}},
			{"type": "Sphere", "centre": {"x": -1, "y": 0, "z": -1}, "radius": 0.5,
			 "material": {"type": "Dialectric", "refractive_index": 1.5}}
		]
	}`

	s, err := ParseScene(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	wantConfig := scene.SamplingConfig{Width: 200, Height: 100, SamplesPerPixel: 4, MaxDepth: 3}
	if s.SamplingConfig != wantConfig {
		t.Errorf("sampling config = %+v, want %+v", s.SamplingConfig, wantConfig)
	}

	wantCamera := geometry.CameraConfig{
		Center:        core.NewPoint(0, 0, 1),
		LookAt:        core.NewPoint(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          45,
		AspectRatio:   2,
		Aperture:      0.1,
		FocusDistance: 3,
	}
	if s.CameraConfig != wantCamera {
		t.Errorf("camera config = %+v, want %+v", s.CameraConfig, wantCamera)
	}

	if len(s.Shapes) != 3 {
		t.Fatalf("expected 3 shapes, got %d", len(s.Shapes))
	}

	wantShapes := []geometry.Shape{
		geometry.NewSphere(core.NewPoint(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.3))),
		geometry.NewSphere(core.NewPoint(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)),
		geometry.NewSphere(core.NewPoint(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
	}
	for i, want := range wantShapes {
		if s.Shapes[i] != want {
			t.Errorf("shape %d = %+v, want %+v", i, s.Shapes[i], want)
		}
	}
}

func TestParseScene_Defaults(t *testing.T) {
	input := `{"objects": [{"type": "sphere", "centre": {"x": 0, "y": 0, "z": -1}, "radius": 1}]}`

	s, err := ParseScene(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if s.SamplingConfig != scene.DefaultSamplingConfig() {
		t.Errorf("sampling config = %+v, want defaults", s.SamplingConfig)
	}
	if s.CameraConfig != geometry.DefaultCameraConfig() {
		t.Errorf("camera config = %+v, want defaults", s.CameraConfig)
	}

	mat := s.Shapes[0].Material
	if mat.Kind != material.KindLambertian || mat.Albedo != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("expected default grey lambertian, got %v", mat)
	}
}

func TestParseScene_PartialConfig(t *testing.T) {
	input := `{"config": {"samples": 100}, "camera": {"fov": 90}, "objects": []}`

	s, err := ParseScene(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if s.SamplingConfig.SamplesPerPixel != 100 {
		t.Errorf("samples = %d, want 100", s.SamplingConfig.SamplesPerPixel)
	}
	if s.SamplingConfig.Width != 400 || s.SamplingConfig.Height != 300 || s.SamplingConfig.MaxDepth != 8 {
		t.Errorf("unset fields should keep defaults, got %+v", s.SamplingConfig)
	}
	if s.CameraConfig.VFov != 90 {
		t.Errorf("fov = %v, want 90", s.CameraConfig.VFov)
	}
	if len(s.Shapes) != 0 {
		t.Errorf("expected empty scene, got %d shapes", len(s.Shapes))
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool // failure comes from scene validation
	}{
		{"malformed json", `{"objects": [`, false},
		{"unknown object type", `{"objects": [{"type": "Cube", "centre": {"x":0,"y":0,"z":0}, "radius": 1}]}`, false},
		{"missing object type", `{"objects": [{"centre": {"x":0,"y":0,"z":0}, "radius": 1}]}`, false},
		{"missing centre", `{"objects": [{"type": "Sphere", "radius": 1}]}`, false},
		{"unknown material", `{"objects": [{"type": "Sphere", "centre": {"x":0,"y":0,"z":0}, "radius": 1, "material": {"type": "Glossy"}}]}`, false},
		{"negative radius", `{"objects": [{"type": "Sphere", "centre": {"x":0,"y":0,"z":0}, "radius": -1}]}`, true},
		{"zero width", `{"config": {"width": 0}, "objects": []}`, true},
		{"oversized image", `{"config": {"width": 4294967296, "height": 4294967296}, "objects": []}`, true},
		{"pixel count overflows", `{"config": {"width": 3037000500, "height": 3037000500}, "objects": []}`, true},
		{"fuzz out of range", `{"objects": [{"type": "Sphere", "centre": {"x":0,"y":0,"z":0}, "radius": 1, "material": {"type": "Metal", "fuzz": 2}}]}`, true},
		{"missing refractive index", `{"objects": [{"type": "Sphere", "centre": {"x":0,"y":0,"z":0}, "radius": 1, "material": {"type": "Dielectric"}}]}`, true},
		{"degenerate camera", `{"camera": {"origin": {"x":0,"y":0,"z":0}, "target": {"x":0,"y":0,"z":0}}, "objects": []}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, scene.ErrInvalidScene); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidScene) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	content := `{"objects": [{"type": "Sphere", "centre": {"x": 0, "y": 0, "z": -2}, "radius": 0.5}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if len(s.Shapes) != 1 {
		t.Errorf("expected 1 shape, got %d", len(s.Shapes))
	}

	if _, err := LoadScene(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadScene_BundledFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.json"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadScene(file)
			if err != nil {
				t.Fatalf("LoadScene failed: %v", err)
			}
			if len(s.Shapes) == 0 {
				t.Error("expected at least one shape")
			}
		})
	}
}

func TestWriteScene_RoundTrip(t *testing.T) {
	source := scene.NewDefaultScene()

	var buf bytes.Buffer
	if err := WriteScene(&buf, source); err != nil {
		t.Fatalf("WriteScene failed: %v", err)
	}

	parsed, err := ParseScene(&buf)
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if parsed.SamplingConfig != source.SamplingConfig {
		t.Errorf("sampling config = %+v, want %+v", parsed.SamplingConfig, source.SamplingConfig)
	}
	if parsed.CameraConfig != source.CameraConfig {
		t.Errorf("camera config = %+v, want %+v", parsed.CameraConfig, source.CameraConfig)
	}
	if len(parsed.Shapes) != len(source.Shapes) {
		t.Fatalf("shape count = %d, want %d", len(parsed.Shapes), len(source.Shapes))
	}
	for i := range source.Shapes {
		if parsed.Shapes[i] != source.Shapes[i] {
			t.Errorf("shape %d = %+v, want %+v", i, parsed.Shapes[i], source.Shapes[i])
		}
	}
}
