package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

// BuiltinScenes lists the scenes available through Builtin
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Matte, metal and glass spheres on a giant ground sphere",
			Group:       builtinGroup,
			Type:        "builtin",
		},
		{
			ID:          "simple",
			Name:        "Simple Sphere",
			Description: "One matte sphere facing a pinhole camera",
			Group:       builtinGroup,
			Type:        "builtin",
		},
	}
}

// ListJSONScenes scans dir for *.json scene files. A missing directory
// yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip unreadable files but keep the rest
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads the optional name, description and group fields
// of a JSON scene file, falling back to values derived from the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       "json:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to read scene file: %w", err)
	}

	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return sceneInfo, fmt.Errorf("failed to parse scene metadata: %w", err)
	}

	if meta.Name != "" {
		sceneInfo.Name = meta.Name
	}
	if meta.Group != "" {
		sceneInfo.Group = meta.Group
	}
	sceneInfo.Description = meta.Description

	return sceneInfo, nil
}

// ListAllScenes returns built-in scenes and the scene files in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltinScenes(), jsonScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
