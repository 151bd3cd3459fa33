// Package recorder maintains the current flight row: it starts a new
// flight when recording begins and keeps its end timestamp current
// with periodic heartbeats, so last_ts is always the most recent
// instant the machine was known up.
package recorder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ciberfox/flight-recorder/internal/store"
)

// Recorder manages the heartbeat loop for a single flight.
type Recorder struct {
	store    *store.Store
	interval time.Duration

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewRecorder creates a recorder writing to st every interval.
func NewRecorder(st *store.Store, interval time.Duration) *Recorder {
	return &Recorder{
		store:    st,
		interval: interval,
	}
}

// Start inserts a new flight row and begins the heartbeat loop.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("recorder already running")
	}

	started := time.Now()
	id, err := r.store.StartFlight(context.Background(), started)
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("start recording: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.heartbeatLoop(ctx, id, started)

	log.Printf("Recording flight %d (heartbeat every %v)", id, r.interval)
	return nil
}

// Stop ends the heartbeat loop, waits for it, and writes a final
// heartbeat so the flight end is as accurate as possible.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.running = false
	r.mu.Unlock()

	r.wg.Wait()
	log.Println("Recorder stopped")
}

// heartbeatLoop advances the flight's end until the context is
// cancelled. Heartbeat failures are logged and the loop keeps going;
// a transient write error must not end the flight.
func (r *Recorder) heartbeatLoop(ctx context.Context, id int64, started time.Time) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := r.store.Heartbeat(context.Background(), id, started, time.Now()); err != nil {
				log.Printf("Warning: final heartbeat for flight %d failed: %v", id, err)
			}
			return

		case now := <-ticker.C:
			if err := r.store.Heartbeat(ctx, id, started, now); err != nil {
				log.Printf("Warning: heartbeat for flight %d failed: %v", id, err)
			}
		}
	}
}
