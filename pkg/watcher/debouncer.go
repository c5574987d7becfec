package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/ritzau/lockgraph/pkg/logging"
)

// Debouncer batches rapid file system events so one save producing several
// notifications triggers a single re-check.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
	mu          sync.Mutex
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}

func (d *Debouncer) run(ctx context.Context) {
	var (
		quiet   *time.Timer
		maxWait *time.Timer
		pending = make(map[ChangeType]bool)
	)

	timerC := func(t *time.Timer) <-chan time.Time {
		if t == nil {
			return nil
		}
		return t.C
	}

	flush := func() {
		if len(pending) == 0 {
			return
		}

		event := ChangeEvent{Timestamp: time.Now()}
		// Lock before manifest: consumers reload in that order
		if pending[ChangeLock] {
			event.Types = append(event.Types, ChangeLock)
		}
		if pending[ChangeManifest] {
			event.Types = append(event.Types, ChangeManifest)
		}
		logging.Debug("flushing batched changes", "count", len(event.Types))
		d.output <- event

		pending = make(map[ChangeType]bool)
		if quiet != nil {
			quiet.Stop()
			quiet = nil
		}
		if maxWait != nil {
			maxWait.Stop()
			maxWait = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}

			for _, t := range event.Types {
				pending[t] = true
			}

			if quiet == nil {
				quiet = time.NewTimer(d.quietPeriod)
			} else {
				quiet.Reset(d.quietPeriod)
			}
			if maxWait == nil {
				maxWait = time.NewTimer(d.maxWait)
			}

		case <-timerC(quiet):
			flush()

		case <-timerC(maxWait):
			flush()
		}
	}
}
