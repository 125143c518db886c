package game

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	EventBufferSize    = 1024                   // Circular buffer size
	MaxEventsPerSec    = 5000                   // Global rate limit
	BatchFlushSize     = 64                     // Events per batch write
	BatchFlushInterval = 100 * time.Millisecond // How often to flush
)

// EventLog provides bounded, rate-limited event logging with backpressure.
// The tick loop is the single producer; a writer goroutine drains the ring
// to a JSONL file. A flooded or slow disk drops events instead of stalling
// the simulation.
type EventLog struct {
	// Circular buffer (lock-free SPSC pattern)
	buffer    [EventBufferSize]Event
	writeHead uint64 // atomic - producer position
	readHead  uint64 // atomic - consumer position

	limiter *rate.Limiter

	// Async writer
	writerWg sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	// File output
	filePath string
	file     *os.File
	fileMu   sync.Mutex

	// Stats for monitoring
	droppedCount uint64 // atomic
	totalCount   uint64 // atomic
	sequence     uint64 // atomic
}

// NewEventLog creates a new bounded event log
func NewEventLog() *EventLog {
	return &EventLog{
		limiter:  rate.NewLimiter(MaxEventsPerSec, MaxEventsPerSec/10),
		stopChan: make(chan struct{}),
	}
}

// Start begins the async writer goroutine
func (el *EventLog) Start(filePath string) error {
	if el.running.Load() {
		return nil
	}

	el.filePath = filePath

	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		el.file = file
	}

	el.running.Store(true)
	el.writerWg.Add(1)
	go el.writerLoop()

	return nil
}

// Stop gracefully shuts down the event log
func (el *EventLog) Stop() {
	el.stopOnce.Do(func() {
		el.running.Store(false)
		close(el.stopChan)
		el.writerWg.Wait()

		// Drain whatever remains before closing the file
		el.flush()

		el.fileMu.Lock()
		if el.file != nil {
			el.file.Close()
		}
		el.fileMu.Unlock()
	})
}

// Emit adds an event with rate limiting.
// Returns false if rate limited or the buffer is full.
func (el *EventLog) Emit(event Event) bool {
	if !el.running.Load() {
		return false
	}

	if !el.limiter.Allow() {
		atomic.AddUint64(&el.droppedCount, 1)
		return false
	}

	write := atomic.LoadUint64(&el.writeHead)
	read := atomic.LoadUint64(&el.readHead)
	if write-read >= EventBufferSize {
		atomic.AddUint64(&el.droppedCount, 1)
		return false
	}

	event.Sequence = atomic.AddUint64(&el.sequence, 1)
	el.buffer[write%EventBufferSize] = event
	atomic.AddUint64(&el.writeHead, 1)
	atomic.AddUint64(&el.totalCount, 1)
	return true
}

// EmitAll emits a tick's event batch, dropping what doesn't fit.
func (el *EventLog) EmitAll(events []Event) {
	for _, ev := range events {
		el.Emit(ev)
	}
}

// writerLoop drains the buffer to disk in batches
func (el *EventLog) writerLoop() {
	defer el.writerWg.Done()

	ticker := time.NewTicker(BatchFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			el.flush()
		case <-el.stopChan:
			return
		}
	}
}

// flush writes pending events to the file
func (el *EventLog) flush() {
	el.fileMu.Lock()
	defer el.fileMu.Unlock()

	if el.file == nil {
		// No sink configured; just advance the read head
		atomic.StoreUint64(&el.readHead, atomic.LoadUint64(&el.writeHead))
		return
	}

	written := 0
	for written < BatchFlushSize {
		read := atomic.LoadUint64(&el.readHead)
		write := atomic.LoadUint64(&el.writeHead)
		if read >= write {
			break
		}

		event := el.buffer[read%EventBufferSize]
		line, err := json.Marshal(event)
		if err == nil {
			el.file.Write(line)
			el.file.Write([]byte("\n"))
		}

		atomic.AddUint64(&el.readHead, 1)
		written++
	}
}

// GetStats returns event log statistics for monitoring
func (el *EventLog) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"total":   atomic.LoadUint64(&el.totalCount),
		"dropped": atomic.LoadUint64(&el.droppedCount),
		"pending": atomic.LoadUint64(&el.writeHead) - atomic.LoadUint64(&el.readHead),
		"running": el.running.Load(),
	}
}
