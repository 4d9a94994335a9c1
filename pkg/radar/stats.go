package radar

import (
	"fmt"
	"maps"
	"sync"
	"time"
)

// Stats aggregates per-outcome counters for the status command and the
// daily digest. In-memory only; reset by process restart.
type Stats struct {
	mu       sync.RWMutex
	counters map[Outcome]int64
	started  time.Time
}

func NewStats() *Stats {
	return &Stats{
		counters: make(map[Outcome]int64),
		started:  time.Now(),
	}
}

// Record adds one terminal outcome.
func (s *Stats) Record(outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[outcome]++
}

// Snapshot returns a copy of the counters.
func (s *Stats) Snapshot() map[Outcome]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Outcome]int64, len(s.counters))
	maps.Copy(out, s.counters)
	return out
}

// Total returns the number of messages that reached any terminal state.
func (s *Stats) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, n := range s.counters {
		total += n
	}
	return total
}

// Summary renders a one-line digest of activity since startup.
func (s *Stats) Summary() string {
	snap := s.Snapshot()
	var total int64
	for _, n := range snap {
		total += n
	}
	return fmt.Sprintf(
		"Radar digest: %d messages seen, %d alerts, %d false alarms, %d keyword misses, %d duplicates since %s",
		total,
		snap[OutcomeAlerted],
		snap[OutcomeFalseAlarm],
		snap[OutcomeNoKeyword],
		snap[OutcomeDuplicate],
		s.started.Format("2006-01-02 15:04"),
	)
}
