package drafts

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last form input before the
// draft is persisted.
const DefaultDebounce = 800 * time.Millisecond

// SaveFunc persists a draft snapshot under a key.
type SaveFunc func(ctx context.Context, key string, data map[string]any) error

// Saver debounces draft writes for one edit session. Every Update resets the
// timer; only the last snapshot within the quiet period is persisted. Close
// cancels any pending write so nothing lands after the editor closes.
//
// Save failures are logged and never surfaced: autosave must not interrupt
// editing.
type Saver struct {
	key   string
	delay time.Duration
	save  SaveFunc

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]any
	closed  bool
}

// NewSaver creates a debounced draft writer for the given key. A delay of
// zero uses DefaultDebounce.
func NewSaver(key string, delay time.Duration, save SaveFunc) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Saver{key: key, delay: delay, save: save}
}

// Update records the latest form snapshot and restarts the quiet period.
// Snapshots with no meaningful content are still accepted (the gate applies
// at persist time, so typing and then clearing a field cancels the write).
func (s *Saver) Update(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.pending = data
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.flush)
}

// Flush persists the pending snapshot immediately, if there is one.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.flush()
}

// Close cancels any pending write. No draft is persisted after Close.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *Saver) flush() {
	s.mu.Lock()
	data := s.pending
	s.pending = nil
	closed := s.closed
	s.mu.Unlock()

	if closed || data == nil {
		return
	}
	if !HasContent(data) {
		return
	}

	if err := s.save(context.Background(), s.key, data); err != nil {
		log.Printf("warning: draft autosave failed for %s: %v", s.key, err)
	}
}
