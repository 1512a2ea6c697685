package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects changed paths and emits them as one sorted batch after a
// quiet period. A path changed several times within the window appears once.
type Debouncer struct {
	interval time.Duration
	pending  map[string]struct{}
	mu       sync.Mutex
	timer    *time.Timer
	output   chan []string
	stopped  bool
}

// NewDebouncer creates a debouncer with the specified quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]struct{}),
		output:   make(chan []string, 16),
	}
}

// Output returns the channel that receives batches of paths.
func (d *Debouncer) Output() <-chan []string {
	return d.output
}

// Add records a changed path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// Stop discards pending paths. Later calls to Add are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	clear(d.pending)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(d.pending))
	for path := range d.pending {
		batch = append(batch, path)
	}
	clear(d.pending)
	d.mu.Unlock()

	slices.Sort(batch)
	select {
	case d.output <- batch:
	default:
		// The consumer is behind; merge the batch into the next one.
		d.mu.Lock()
		for _, path := range batch {
			d.pending[path] = struct{}{}
		}
		if !d.stopped {
			d.timer = time.AfterFunc(d.interval, d.flush)
		}
		d.mu.Unlock()
	}
}
