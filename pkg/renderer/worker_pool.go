package renderer

import (
	"context"
	"runtime"
	"sync"
)

// RowFunc renders one scanline and returns the number of samples it took
type RowFunc func(ctx context.Context, row int) (int, error)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row int
}

// RowResult contains the result from rendering a scanline
type RowResult struct {
	Row     int
	Samples int
	Error   error
}

// WorkerPool renders scanlines in parallel. Every task writes a disjoint row
// of the output, so workers share nothing but the read-only scene.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	render      RowFunc
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool sized for numRows tasks
func NewWorkerPool(numRows, numWorkers int, render RowFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan RowTask, numRows),   // Buffer for all rows
		resultQueue: make(chan RowResult, numRows), // Buffer for all results
		numWorkers:  numWorkers,
		render:      render,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop waits for queued tasks to drain and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Keep draining after cancellation so Stop never blocks
		if err := ctx.Err(); err != nil {
			wp.resultQueue <- RowResult{Row: task.Row, Error: err}
			continue
		}

		samples, err := wp.render(ctx, task.Row)
		wp.resultQueue <- RowResult{Row: task.Row, Samples: samples, Error: err}
	}
}
