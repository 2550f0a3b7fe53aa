package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name, JSON scene name in scenes/, or path to a .json file")
	output := flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	width := flag.Int("width", 0, "Override image width")
	height := flag.Int("height", 0, "Override image height")
	samples := flag.Int("samples", 0, "Override samples per pixel")
	depth := flag.Int("depth", 0, "Override maximum bounce depth")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	chunkSize := flag.Int("chunk", 0, "Pixels per work item (0 = one image row)")
	seed := flag.Int64("seed", 0, "Random seed (0 = seed from the clock)")
	quiet := flag.Bool("quiet", false, "Disable progress output")
	list := flag.Bool("list", false, "List available scenes and exit")
	dump := flag.Bool("dump-scene", false, "Print the resolved scene as JSON and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: path-tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
		return
	}

	if *list {
		printScenes()
		return
	}

	if !*dump {
		fmt.Println("Starting Path Tracer...")
	}

	selectedScene, err := createScene(*sceneType, !*dump)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(selectedScene, *width, *height, *samples, *depth)

	if *dump {
		if err := dumpScene(os.Stdout, selectedScene); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	options := renderer.RenderOptions{
		NumWorkers: *workers,
		ChunkSize:  *chunkSize,
		Seed:       *seed,
	}
	if !*quiet {
		config := selectedScene.SamplingConfig
		options.Progress = newProgressPrinter(config.Width * config.Height)
	}

	frame, stats := raytracer.Render(options)
	img := frame.Image()

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Samples: %d total, %.1f per pixel, %d workers\n",
		stats.TotalSamples, stats.AverageSamples(), stats.NumWorkers)
	fmt.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := *output
	if filename == "" {
		outputDir := createOutputDir(*sceneType)
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := savePNG(filename, img); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene resolves a built-in scene, a JSON scene in scenes/ by name,
// or a JSON file path
func createScene(sceneType string, verbose bool) (*scene.Scene, error) {
	if verbose {
		if _, ok := scene.Builtin(sceneType); ok {
			fmt.Printf("Using built-in %s scene...\n", sceneType)
		} else if sceneType != "" {
			fmt.Printf("Loading scene from %s...\n", loaders.ScenePath(sceneType, scenesDir))
		}
	}
	return loaders.ResolveScene(sceneType, scenesDir)
}

// applyOverrides replaces sampling settings given on the command line.
// Non-positive values keep the scene's own setting.
func applyOverrides(s *scene.Scene, width, height, samples, depth int) {
	if width > 0 {
		s.SamplingConfig.Width = width
	}
	if height > 0 {
		s.SamplingConfig.Height = height
	}
	if samples > 0 {
		s.SamplingConfig.SamplesPerPixel = samples
	}
	if depth > 0 {
		s.SamplingConfig.MaxDepth = depth
	}
}

// dumpScene validates s and writes it in the JSON scene format, so a
// built-in scene with overrides can be saved and edited as a file
func dumpScene(w io.Writer, s *scene.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return loaders.WriteScene(w, s)
}

// createOutputDir returns output/<scene base name>, creating it if needed
func createOutputDir(sceneType string) string {
	base := strings.TrimPrefix(sceneType, "json:")
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}

	outputDir := filepath.Join("output", base)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Warning: could not create %s: %v\n", outputDir, err)
	}
	return outputDir
}

// newProgressPrinter reports completion in whole percent on one console line
func newProgressPrinter(totalPixels int) renderer.ProgressFunc {
	return renderer.NewPercentProgress(totalPixels, func(percent int) {
		fmt.Printf("\rProgress: %3d%%", percent)
		if percent == 100 {
			fmt.Println()
		}
	})
}

// savePNG encodes img to filename
func savePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}
	return nil
}

// printScenes lists built-in and JSON scenes found in scenes/
func printScenes() {
	response, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}
	for _, group := range response.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("    %-16s %s\n", info.ID, info.Description)
		}
	}
}
