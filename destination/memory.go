package destination

import (
	"context"
	"sync"

	"github.com/murthyn/composer/types"
)

// MemoryEntry is one recorded LogData call.
type MemoryEntry struct {
	Timestamp types.Timestamp
	Level     types.LogLevel
	Data      types.LogData
}

// MemoryEvent is one recorded lifecycle event.
type MemoryEvent struct {
	Event     types.Event
	Timestamp types.Timestamp
}

// Memory is an in-process destination that retains cloned entries and
// events for later inspection.
//
// Memory implements both LoggerDestination and Callback. It is safe for
// concurrent use and is the standard destination for tests.
type Memory struct {
	mu      sync.Mutex
	entries []MemoryEntry
	events  []MemoryEvent
	closed  bool
}

// Compile-time assertions for both capability contracts.
var (
	_ types.LoggerDestination = (*Memory)(nil)
	_ types.Callback          = (*Memory)(nil)
)

// NewMemory creates an empty in-memory destination.
func NewMemory() *Memory {
	return &Memory{}
}

// Name returns "memory".
func (d *Memory) Name() string { return "memory" }

// LogData clones and retains one entry.
func (d *Memory) LogData(timestamp types.Timestamp, level types.LogLevel, data types.LogData) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return types.ErrDestinationClosed
	}
	d.entries = append(d.entries, MemoryEntry{Timestamp: timestamp, Level: level, Data: data.Clone()})

	return nil
}

// RunEvent retains one lifecycle event.
func (d *Memory) RunEvent(_ context.Context, event types.Event, timestamp types.Timestamp) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return types.ErrDestinationClosed
	}
	d.events = append(d.events, MemoryEvent{Event: event, Timestamp: timestamp})

	return nil
}

// Close marks the destination closed; retained entries remain readable.
func (d *Memory) Close(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true

	return nil
}

// Entries returns a copy of all retained entries in logging order.
func (d *Memory) Entries() []MemoryEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]MemoryEntry(nil), d.entries...)
}

// Events returns a copy of all retained lifecycle events in dispatch order.
func (d *Memory) Events() []MemoryEvent {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]MemoryEvent(nil), d.events...)
}
