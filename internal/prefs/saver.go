// Package prefs persists comparison view preferences with a short write
// debounce, so rapid slider drags collapse into a single storage write.
package prefs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// DefaultDebounce is the delay between the last Save call and the
// underlying storage write.
const DefaultDebounce = 400 * time.Millisecond

// Saver debounces preference writes. Save replaces any pending value, so
// the storage only ever sees the newest preferences (last-write-wins).
// Write failures are logged and swallowed: losing a preference write must
// never break the comparison view.
type Saver struct {
	store  storage.PreferenceStore
	delay  time.Duration
	logger *log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *domain.ComparisonPrefs
	closed  bool
}

// NewSaver creates a Saver writing through to store after delay. A
// non-positive delay falls back to DefaultDebounce.
func NewSaver(store storage.PreferenceStore, delay time.Duration, logger *log.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Saver{
		store:  store,
		delay:  delay,
		logger: logger,
	}
}

// Save schedules p for persistence, superseding any not-yet-written value.
func (s *Saver) Save(p *domain.ComparisonPrefs) {
	if p == nil {
		return
	}

	pCopy := *p
	pCopy.VisibleSupplierIDs = append([]string(nil), p.VisibleSupplierIDs...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending = &pCopy

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.flush)
}

// Flush writes any pending preferences immediately.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.flush()
}

// Close flushes pending preferences and stops the saver. Save calls after
// Close are dropped.
func (s *Saver) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.flush()
}

func (s *Saver) flush() {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()

	if p == nil {
		return
	}

	if err := s.store.Put(context.Background(), p); err != nil {
		s.logger.Printf("[prefs] save failed for rfq %s: %v", p.RFQID, err)
	}
}
