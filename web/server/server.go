package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Image size and sampling limits accepted from clients
const (
	minImageSize  = 1
	maxImageSize  = 2000
	maxSamples    = 10000
	maxDepthLimit = 1000
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server that discovers JSON scenes in scenesDir
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene ID (e.g., "default" or "json:three_spheres")
	Width   int    `json:"width"`   // Image width (0 = scene default)
	Height  int    `json:"height"`  // Image height (0 = scene default)
	Samples int    `json:"samples"` // Samples per pixel (0 = scene default)
	Depth   int    `json:"depth"`   // Maximum bounce depth (0 = scene default)
	Seed    int64  `json:"seed"`    // Random seed (0 = seed from the clock)
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	AverageSamples  float64 `json:"averageSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	NumWorkers      int     `json:"numWorkers"`
	ElapsedMs       int64   `json:"elapsedMs"`
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sceneObj, err := loaders.ResolveScene(sceneID, s.scenesDir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneID,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"shapes":          len(sceneObj.Shapes),
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":  map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepthLimit},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses query parameters shared by every render endpoint
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepthLimit); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// createScene resolves the requested scene and applies the request's overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := loaders.ResolveScene(req.Scene, s.scenesDir)
	if err != nil {
		return nil, err
	}
	applyOverrides(sceneObj, req)
	if err := checkLimits(sceneObj.SamplingConfig); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// checkLimits applies the request limits to a scene's final sampling
// settings, whichever source they came from
func checkLimits(config scene.SamplingConfig) error {
	switch {
	case config.Width < minImageSize || config.Width > maxImageSize:
		return fmt.Errorf("width must be between %d and %d, got: %d", minImageSize, maxImageSize, config.Width)
	case config.Height < minImageSize || config.Height > maxImageSize:
		return fmt.Errorf("height must be between %d and %d, got: %d", minImageSize, maxImageSize, config.Height)
	case config.SamplesPerPixel < 1 || config.SamplesPerPixel > maxSamples:
		return fmt.Errorf("samples must be between 1 and %d, got: %d", maxSamples, config.SamplesPerPixel)
	case config.MaxDepth < 1 || config.MaxDepth > maxDepthLimit:
		return fmt.Errorf("depth must be between 1 and %d, got: %d", maxDepthLimit, config.MaxDepth)
	}
	return nil
}

// applyOverrides replaces the scene's sampling settings with any given in req
func applyOverrides(sceneObj *scene.Scene, req *RenderRequest) {
	if req.Width > 0 {
		sceneObj.SamplingConfig.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.SamplingConfig.Height = req.Height
	}
	if req.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.Depth
	}

	// Performance warning
	config := sceneObj.SamplingConfig
	if config.Width*config.Height > 800*600 && config.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseIntQuery parses a required integer query parameter
func parseIntQuery(values url.Values, key string) (int, error) {
	value := values.Get(key)
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s coordinate: %q", key, value)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
