package game

import (
	"log"
	"sync"
	"time"
)

// Runner drives a Session in real time. It owns the tick goroutine and the
// held input sample; the HTTP layer writes inputs, the loop reads them once
// per tick. Collaborators (websocket hub, persistence, metrics) subscribe
// through the OnTick callback rather than touching the session directly.
type Runner struct {
	session  *Session
	tickRate int

	inputMu sync.Mutex
	input   InputSample

	// OnTick runs after every tick with the fresh snapshot and the events
	// that tick produced. Set before Start; never mutated after.
	OnTick func(snap Snapshot, events []Event, tickTime time.Duration)

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRunner wraps a session with a real-time tick driver.
func NewRunner(session *Session, tickRate int) *Runner {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Runner{
		session:  session,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// Session exposes the wrapped session for the API layer.
func (r *Runner) Session() *Session {
	return r.session
}

// SetInput replaces the held control sample. The next tick picks it up.
func (r *Runner) SetInput(in InputSample) {
	r.inputMu.Lock()
	r.input = in
	r.inputMu.Unlock()
}

// Input returns the currently held control sample.
func (r *Runner) Input() InputSample {
	r.inputMu.Lock()
	defer r.inputMu.Unlock()
	return r.input
}

// Start launches the tick loop. Call once; stop with Stop.
func (r *Runner) Start() {
	interval := time.Second / time.Duration(r.tickRate)
	log.Printf("⏱️ Tick driver starting: %d ticks/sec (%v interval)", r.tickRate, interval)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.stopChan:
				return
			case <-ticker.C:
				start := time.Now()
				events := r.session.Tick(r.Input(), 1)
				elapsed := time.Since(start)

				if r.OnTick != nil {
					r.OnTick(r.session.Snapshot(), events, elapsed)
				}
			}
		}
	}()
}

// Stop halts the tick loop and waits for the in-flight tick to finish.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
	log.Println("⏱️ Tick driver stopped")
}
