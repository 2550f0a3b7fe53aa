package loaders

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScenePath(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"bare name", "three_spheres", filepath.Join("scenes", "three_spheres.json")},
		{"discovered id", "json:three_spheres", filepath.Join("scenes", "three_spheres.json")},
		{"file name", "mine.json", "mine.json"},
		{"relative path", "other/mine", "other/mine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScenePath(tt.id, "scenes"); got != tt.expected {
				t.Errorf("ScenePath(%q) = %q, want %q", tt.id, got, tt.expected)
			}
		})
	}
}

func TestResolveScene(t *testing.T) {
	dir := t.TempDir()
	content := `{"objects": [{"type": "Sphere", "centre": {"x": 0, "y": 0, "z": -2}, "radius": 0.5}]}`
	if err := os.WriteFile(filepath.Join(dir, "ball.json"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	tests := []struct {
		name        string
		id          string
		expectError bool
		shapes      int
	}{
		{"built-in default", "default", false, 4},
		{"built-in simple", "simple", false, 1},
		{"json by name", "ball", false, 1},
		{"json by id", "json:ball", false, 1},
		{"json by path", filepath.Join(dir, "ball.json"), false, 1},
		{"unknown", "nonexistent", true, 0},
		{"empty", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ResolveScene(tt.id, dir)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q", tt.id)
				}
				if s != nil {
					t.Errorf("expected nil scene for %q", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.id, err)
			}
			if len(s.Shapes) != tt.shapes {
				t.Errorf("got %d shapes, want %d", len(s.Shapes), tt.shapes)
			}
		})
	}
}
