package notifications

import (
	"context"
	"log/slog"
	"sync"

	"orderflow/internal/pkg/errs"
)

// Task is a unit of notification work executed on a dispatcher worker.
type Task func(ctx context.Context)

// Dispatcher runs notification tasks on a fixed pool of workers fed by a
// bounded queue. Enqueue never blocks: when the queue is full the task is
// dropped and logged. Losing a notification is acceptable, stalling the
// business transaction that produced it is not.
type Dispatcher struct {
	queue   chan Task
	workers int
	logger  *slog.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewDispatcher creates a dispatcher with the given worker count and queue
// capacity.
func NewDispatcher(workers, queueSize int, logger *slog.Logger) (*Dispatcher, error) {
	if workers <= 0 || workers > maxWorkers {
		return nil, errs.NewValueIsOutOfRangeError("workers", workers, 1, maxWorkers)
	}
	if queueSize <= 0 || queueSize > maxQueueSize {
		return nil, errs.NewValueIsOutOfRangeError("queueSize", queueSize, 1, maxQueueSize)
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Dispatcher{
		queue:   make(chan Task, queueSize),
		workers: workers,
		logger:  logger.With("component", "notification_dispatcher"),
	}, nil
}

const (
	maxWorkers   = 64
	maxQueueSize = 100000
)

// Start launches the worker pool. Calling Start twice is a no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	d.logger.Info("Notification dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

// Stop closes the queue and waits for in-flight and queued tasks to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.queue)
	d.wg.Wait()
	d.logger.Info("Notification dispatcher stopped")
}

// Enqueue submits a task for asynchronous execution. Returns false when the
// task was dropped because the queue is full or the dispatcher was stopped.
func (d *Dispatcher) Enqueue(task Task) bool {
	if task == nil {
		return false
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		d.logger.Warn("Notification dropped, dispatcher stopped")
		return false
	}

	select {
	case d.queue <- task:
		d.mu.Unlock()
		return true
	default:
		d.mu.Unlock()
		d.logger.Warn("Notification dropped, queue is full", "queue_size", cap(d.queue))
		return false
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for task := range d.queue {
		d.run(task)
	}
}

func (d *Dispatcher) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Notification task panicked", "panic", r)
		}
	}()
	task(context.Background())
}
