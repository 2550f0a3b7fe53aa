package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// maxSceneBodyBytes bounds a posted JSON scene
const maxSceneBodyBytes = 1 << 20

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate reports render completion in percent
type ProgressUpdate struct {
	Percent   int   `json:"percent"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// ImageUpdate carries the finished frame
type ImageUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// handleRender renders a scene and responds with a PNG. GET renders a
// built-in or discovered scene by ID; POST renders the JSON scene in the body.
// Query parameters override the scene's sampling settings in both cases.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	var sceneObj *scene.Scene
	switch r.Method {
	case http.MethodGet:
		sceneObj, err = s.createScene(req)
	case http.MethodPost:
		sceneObj, err = loaders.ParseScene(http.MaxBytesReader(w, r.Body, maxSceneBodyBytes))
		if err == nil {
			applyOverrides(sceneObj, req)
			err = checkLimits(sceneObj.SamplingConfig)
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, renderer.NewDefaultLogger())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	frame, stats := raytracer.Render(renderer.RenderOptions{Seed: req.Seed})

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image()); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// handleRenderStream renders a scene while streaming console messages and
// progress via SSE, finishing with the encoded image. A disconnected client
// stops receiving events; the render itself always runs to completion.
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()

	raytracer, err := renderer.NewRaytracer(sceneObj, webLogger)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	// Single writer goroutine owns the response
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(ctx, w, sseEventChan)
		close(writerDone)
	}()

	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	startTime := time.Now()
	config := sceneObj.SamplingConfig
	progress := renderer.NewPercentProgress(config.Width*config.Height, func(percent int) {
		s.sendEvent(ctx, sseEventChan, "progress", ProgressUpdate{
			Percent:   percent,
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
	})

	frame, stats := raytracer.Render(renderer.RenderOptions{Seed: req.Seed, Progress: progress})

	// Logging is finished once Render returns
	close(consoleChan)
	<-consoleDone

	imageData, err := s.imageToBase64PNG(frame.Image())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("failed to encode image: %v", err))
	} else {
		s.sendEvent(ctx, sseEventChan, "image", ImageUpdate{
			ImageData: imageData,
			Width:     frame.Width,
			Height:    frame.Height,
			Stats:     toStats(stats),
		})
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes events until the terminal event or client disconnect
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan chan SSEEvent) {
	for {
		select {
		case event := <-sseEventChan:
			if err := s.sendSSEEvent(w, event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if event.Type == "complete" {
				return
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		s.sendEvent(ctx, sseEventChan, "console", consoleMsg)
	}
}

// sendEvent marshals payload and queues it, dropping it if the client is gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// sendSSEEvent writes a single SSE event and flushes it
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		TotalSamples:    stats.TotalSamples,
		AverageSamples:  stats.AverageSamples(),
		SamplesPerPixel: stats.SamplesPerPixel,
		NumWorkers:      stats.NumWorkers,
		ElapsedMs:       stats.Duration.Milliseconds(),
	}
}
