package dispatch

import (
	"context"
	"log/slog"
	"sync"
)

// Task is a unit of work submitted to the pool.
type Task func(ctx context.Context) error

// WorkerPool fans mail deliveries out over a fixed number of goroutines.
type WorkerPool struct {
	workerCount int
	taskQueue   chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
	closeMux    sync.Mutex
	logger      *slog.Logger
}

func NewWorkerPool(workerCount int, logger *slog.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		taskQueue:   make(chan Task, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
	wp.logger.Info("worker_pool_started", "workers", wp.workerCount)
}

// Submit adds a task to the queue. Rejected once the pool is shutting down.
func (wp *WorkerPool) Submit(task Task) {
	select {
	case <-wp.ctx.Done():
		wp.logger.Warn("task_rejected_pool_closing")
		return
	default:
	}
	select {
	case wp.taskQueue <- task:
	case <-wp.ctx.Done():
		wp.logger.Warn("task_rejected_pool_closing")
	}
}

// Wait blocks until every queued task has finished.
func (wp *WorkerPool) Wait() {
	wp.closeMux.Lock()
	if !wp.closed {
		close(wp.taskQueue)
		wp.closed = true
	}
	wp.closeMux.Unlock()

	wp.wg.Wait()
}

// Shutdown cancels in-flight work and waits for the workers to exit.
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	wp.Wait()
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case task, ok := <-wp.taskQueue:
			if !ok {
				return
			}
			if err := task(wp.ctx); err != nil {
				wp.logger.Error("task_failed", "worker", id, "error", err)
			}
		case <-wp.ctx.Done():
			return
		}
	}
}
