package components

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// PlaceRecord is one place cached from the most recent places lookup, kept
// so follow-up questions can reference results by index.
type PlaceRecord struct {
	Name       string   `json:"name,omitempty"`
	Address    string   `json:"address,omitempty"`
	DistanceM  int      `json:"distance_m,omitempty"`
	Categories []string `json:"categories,omitempty"`
	PlaceID    string   `json:"fsq_place_id,omitempty"`
}

// Session is the explicit per-conversation shared state: the conversation
// memory plus the caches individual tools are allowed to write. Tools never
// touch ambient globals; anything shared between tool calls lives here.
type Session struct {
	memory *Memory

	mtx        sync.RWMutex
	lastPlaces []PlaceRecord

	// running guards against overlapping orchestration runs: one run
	// executes to completion before the next user input is accepted.
	running atomic.Bool
}

// NewSession returns a Session with the given memory. A nil memory gets an
// unbounded one.
func NewSession(memory *Memory) *Session {
	if memory == nil {
		memory = NewMemory(0)
	}
	return &Session{
		memory: memory,
	}
}

// Memory returns the session conversation memory.
func (s *Session) Memory() *Memory {
	return s.memory
}

// SetLastPlaces stores a copy of the latest places lookup results.
func (s *Session) SetLastPlaces(places []PlaceRecord) {
	cp := make([]PlaceRecord, len(places))
	copy(cp, places)
	s.mtx.Lock()
	s.lastPlaces = cp
	s.mtx.Unlock()
}

// LastPlaces returns a copy of the cached places from the latest lookup.
func (s *Session) LastPlaces() []PlaceRecord {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	cp := make([]PlaceRecord, len(s.lastPlaces))
	copy(cp, s.lastPlaces)
	return cp
}

// PlaceByIndex returns the cached place at idx (zero based) from the latest
// lookup.
func (s *Session) PlaceByIndex(idx int) (*PlaceRecord, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if idx < 0 || idx >= len(s.lastPlaces) {
		return nil, fmt.Errorf("no cached place at index %d", idx)
	}
	place := s.lastPlaces[idx]
	return &place, nil
}

// BeginRun marks the session busy. It fails if a run is already in flight.
func (s *Session) BeginRun() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("session busy: a run is already in progress")
	}
	return nil
}

// EndRun marks the session idle again.
func (s *Session) EndRun() {
	s.running.Store(false)
}
