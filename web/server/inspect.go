package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeIndex   int                    `json:"shapeIndex"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Background   [3]float64             `json:"background,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the nearest surface hit by an inspection ray
type InspectResult struct {
	Hit        bool
	Ray        core.Ray
	HitRecord  material.HitRecord
	ShapeIndex int // Index into the scene's shapes, -1 on a miss
}

// inspectPixel casts one ray through the center of pixel (pixelX, pixelY),
// row 0 at the top, and returns the first surface it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	config := sceneObj.SamplingConfig
	camera := sceneObj.NewCamera()

	// Fixed lens sample so repeated inspections agree
	sampler := core.NewSeededSampler(1)
	u := (float64(pixelX) + 0.5) / float64(config.Width)
	v := (float64(config.Height-pixelY) + 0.5) / float64(config.Height)
	ray := camera.GetRay(u, v, sampler)

	hit, index := sceneObj.NearestHitIndex(ray, renderer.HitEpsilon, math.Inf(1))
	return InspectResult{
		Hit:        index >= 0,
		Ray:        ray,
		HitRecord:  hit,
		ShapeIndex: index,
	}
}

// extractMaterialInfo describes a material's parameters
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		return "lambertian", properties

	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
		return "metal", properties

	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a shape's parameters
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch shape.Kind {
	case geometry.KindSphere:
		properties["center"] = [3]float64{shape.Center.X, shape.Center.Y, shape.Center.Z}
		properties["radius"] = shape.Radius
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := parseIntQuery(r.URL.Query(), "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelY, err := parseIntQuery(r.URL.Query(), "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sceneObj.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Pixel (%d, %d) out of bounds for %dx%d image",
			pixelX, pixelY, config.Width, config.Height))
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{
			Hit:        false,
			ShapeIndex: -1,
			Background: vecArray(renderer.BackgroundColor(result.Ray)),
		})
		return
	}

	shape := sceneObj.Shapes[result.ShapeIndex]
	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(shape)

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ShapeIndex:   result.ShapeIndex,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
