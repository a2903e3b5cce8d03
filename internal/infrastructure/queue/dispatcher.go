package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/donelist/task-service/internal/api/metrics"
	"github.com/donelist/task-service/internal/core/domain"
	"github.com/donelist/task-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes task activity entries to a fixed set of workers using
// consistent hashing on the task id, guaranteeing per-task write ordering.
// It implements ports.ActivityRecorder for the task service.
type Dispatcher struct {
	workers   []chan domain.TaskActivity
	processor ports.ActivityProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.ActivityProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.TaskActivity, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TaskActivity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an activity entry on the worker responsible for its task.
// When the worker's buffer is full the entry is dropped with a warning rather
// than blocking the request path; the audit trail is best-effort.
func (d *Dispatcher) Record(entry domain.TaskActivity) {
	idx := d.shardIndex(entry.TaskID)
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("task_id", entry.TaskID).
			Str("action", string(entry.Action)).
			Msg("activity queue full, entry dropped")
	}
}

// shardIndex maps a task id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TaskActivity) {
	gauge := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if err := d.processor.Process(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("task_id", entry.TaskID).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
		}
	}
}
