package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-path-tracer/pkg/core"
)

// ChunkTask represents a chunk rendering task for the worker pool
type ChunkTask struct {
	Chunk Chunk
	Seed  int64 // Seed for the chunk's private generator
}

// ChunkResult contains the result from rendering a chunk
type ChunkResult struct {
	TaskID int
	Stats  RenderStats
}

// ProgressFunc is invoked once per completed pixel with its flat index.
// Workers call it concurrently.
type ProgressFunc func(pixel int)

// WorkerPool manages parallel chunk rendering
type WorkerPool struct {
	taskQueue   chan ChunkTask
	resultQueue chan ChunkResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual chunk rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	frame       *Frame
	progress    ProgressFunc
	taskQueue   chan ChunkTask
	resultQueue chan ChunkResult
}

// NewWorkerPool creates a worker pool that writes into frame. Queues are
// buffered for maxTasks so submission never blocks.
func NewWorkerPool(raytracer *Raytracer, frame *Frame, numWorkers, maxTasks int, progress ProgressFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ChunkTask, maxTasks),
		resultQueue: make(chan ChunkResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			frame:       frame,
			progress:    progress,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a chunk task to the worker pool
func (wp *WorkerPool) SubmitTask(task ChunkTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed chunk result
func (wp *WorkerPool) GetResult() (ChunkResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats := w.renderChunk(task)
		w.resultQueue <- ChunkResult{
			TaskID: task.Chunk.ID,
			Stats:  stats,
		}
	}
}

// renderChunk renders every pixel of the chunk into the shared frame.
// Chunks never overlap, so the writes need no locking.
func (w *Worker) renderChunk(task ChunkTask) RenderStats {
	sampler := core.NewSeededSampler(task.Seed)
	width := w.frame.Width
	stats := RenderStats{TotalPixels: task.Chunk.Len()}

	for p := task.Chunk.Start; p < task.Chunk.End; p++ {
		i, j := p%width, p/width

		var ps PixelStats
		w.raytracer.samplePixel(i, j, &ps, sampler)
		w.frame.Set(i, j, ps.GetColor())

		stats.TotalSamples += ps.SampleCount
		if w.progress != nil {
			w.progress(p)
		}
	}

	return stats
}
