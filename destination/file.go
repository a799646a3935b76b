package destination

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/murthyn/composer/types"
)

// File writes log entries as JSON lines to a file.
//
// LogData clones the entry on the training goroutine and hands it to a
// background worker over a bounded queue; encoding and file I/O never run
// on the training goroutine. When the queue is full the entry is dropped,
// the drop is recorded via the collector, and ErrQueueFull is returned for
// the owning Logger to warn about.
//
// File also implements Callback: the buffered writer is flushed to disk at
// every epoch end.
type File struct {
	path      string
	logger    types.Logger
	collector types.Collector

	entryCh chan entry
	flushCh chan struct{}
	doneCh  chan struct{}

	mu     sync.Mutex
	closed bool
}

// Compile-time assertions for both capability contracts.
var (
	_ types.LoggerDestination = (*File)(nil)
	_ types.Callback          = (*File)(nil)
)

// NewFile creates a file destination and starts its background worker.
//
// Parameters:
//   - path: Output file, created or truncated
//   - opts: Optional logger, collector, and queue size
//
// Returns:
//   - *File: The running destination
//   - error: File creation failure
func NewFile(path string, opts ...Option) (*File, error) {
	o := applyOptions(opts)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	d := &File{
		path:      path,
		logger:    o.logger,
		collector: o.collector,
		entryCh:   make(chan entry, o.queueSize),
		flushCh:   make(chan struct{}, 1),
		doneCh:    make(chan struct{}),
	}

	go d.run(f)

	return d, nil
}

// Name returns "file:<path>".
func (d *File) Name() string { return "file:" + d.path }

// LogData clones the entry and enqueues it for the background worker.
//
// Returns:
//   - error: ErrQueueFull when the entry was dropped, ErrDestinationClosed
//     after Close
func (d *File) LogData(timestamp types.Timestamp, level types.LogLevel, data types.LogData) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return types.ErrDestinationClosed
	}

	e := entry{Timestamp: timestamp, Level: level.String(), Data: data.Clone()}
	select {
	case d.entryCh <- e:
		d.collector.SetQueueDepth(d.Name(), len(d.entryCh))
		d.mu.Unlock()

		return nil
	default:
		d.mu.Unlock()
		d.collector.RecordDroppedEntry(d.Name())

		return types.ErrQueueFull
	}
}

// RunEvent requests a flush of the buffered writer at epoch end.
//
// The request is non-blocking; a pending flush request is not duplicated.
func (d *File) RunEvent(_ context.Context, event types.Event, _ types.Timestamp) error {
	if event != types.EventEpochEnd {
		return nil
	}

	select {
	case d.flushCh <- struct{}{}:
	default:
	}

	return nil
}

// Close drains the queue, flushes, and closes the file.
//
// Parameters:
//   - ctx: Bounds the drain; on expiry remaining queued entries are lost
func (d *File) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return types.ErrDestinationClosed
	}
	d.closed = true
	close(d.entryCh)
	d.mu.Unlock()

	select {
	case <-d.doneCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("file destination close: %w", ctx.Err())
	}
}

// run is the background worker: encodes queued entries, honors flush
// requests, and closes the file when the queue is drained.
func (d *File) run(f *os.File) {
	defer close(d.doneCh)

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	defer func() {
		if err := w.Flush(); err != nil {
			d.logger.Warn("failed to flush log file", "path", d.path, "error", err)
		}
		if err := f.Close(); err != nil {
			d.logger.Warn("failed to close log file", "path", d.path, "error", err)
		}
	}()

	for {
		select {
		case e, ok := <-d.entryCh:
			if !ok {
				return
			}
			if err := enc.Encode(e); err != nil {
				d.logger.Warn("failed to encode log entry", "path", d.path, "error", err)
				d.collector.RecordDestinationError(d.Name())
			}
			d.collector.SetQueueDepth(d.Name(), len(d.entryCh))
		case <-d.flushCh:
			if err := w.Flush(); err != nil {
				d.logger.Warn("failed to flush log file", "path", d.path, "error", err)
				d.collector.RecordDestinationError(d.Name())
			}
		}
	}
}
