package renderer

import (
	"time"
)

// RenderOptions controls how a render is scheduled
type RenderOptions struct {
	NumWorkers int          // Number of parallel workers (0 = use CPU count)
	ChunkSize  int          // Pixels per task (0 = one image row)
	Seed       int64        // Base seed (0 = seed from the clock)
	Progress   ProgressFunc // Optional per-pixel completion callback
}

// Render traces every pixel of the scene and blocks until the frame is
// complete. With a non-zero seed the output is identical for any worker
// count, since each chunk owns a generator seeded from (Seed, chunk ID).
func (rt *Raytracer) Render(options RenderOptions) (*Frame, RenderStats) {
	startTime := time.Now()

	seed := options.Seed
	if seed == 0 {
		seed = startTime.UnixNano()
	}

	frame := NewFrame(rt.config.Width, rt.config.Height)
	chunks := NewChunkGrid(rt.config.Width, rt.config.Height, options.ChunkSize)

	workerPool := NewWorkerPool(rt, frame, options.NumWorkers, len(chunks), options.Progress)
	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d (%d chunks, %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth,
		len(chunks), workerPool.GetNumWorkers())

	workerPool.Start()
	for _, chunk := range chunks {
		workerPool.SubmitTask(ChunkTask{Chunk: chunk, Seed: chunkSeed(seed, chunk.ID)})
	}

	stats := RenderStats{
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumChunks:       len(chunks),
		NumWorkers:      workerPool.GetNumWorkers(),
	}
	for range chunks {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	workerPool.Stop()

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Render complete: %d pixels, %d samples in %v\n",
		stats.TotalPixels, stats.TotalSamples, stats.Duration)

	return frame, stats
}
