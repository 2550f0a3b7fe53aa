package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-path-tracer/pkg/scene"
)

// ResolveScene finds a scene by ID. It accepts a built-in scene name, a
// discovered scene ID of the form "json:<name>", a bare name of a file in
// dir, or a path to a JSON file.
func ResolveScene(id, dir string) (*scene.Scene, error) {
	if id == "" {
		return nil, fmt.Errorf("no scene given")
	}

	if s, ok := scene.Builtin(id); ok {
		return s, nil
	}

	path := ScenePath(id, dir)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unknown scene %q: not a built-in scene and %s does not exist", id, path)
	}
	return LoadScene(path)
}

// ScenePath maps a scene ID to the JSON file it names. Anything that already
// looks like a path is returned unchanged.
func ScenePath(id, dir string) string {
	if strings.HasSuffix(id, ".json") || strings.ContainsAny(id, `/\`) {
		return id
	}
	name := strings.TrimPrefix(id, "json:")
	return filepath.Join(dir, name+".json")
}
