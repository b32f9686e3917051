package lang

import "sync"

// Stats accumulates translation outcomes for a run. It is an explicit
// accumulator passed where needed and merged upward, never package-level
// state.
type Stats struct {
	mu         sync.Mutex
	byMethod   map[string]int
	fields     int
	charsIn    int
	charsOut   int
	lowQuality int
}

// NewStats returns an empty accumulator.
func NewStats() *Stats {
	return &Stats{byMethod: make(map[string]int)}
}

// Record adds one field translation outcome.
func (s *Stats) Record(res Result, sourceLen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byMethod[res.Method]++
	s.fields++
	s.charsIn += sourceLen
	s.charsOut += len(res.Text)
	if res.Quality < 0.5 {
		s.lowQuality++
	}
}

// Merge folds another accumulator into this one.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	other.mu.Lock()
	snapshot := other.snapshotLocked()
	other.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for method, count := range snapshot.ByMethod {
		s.byMethod[method] += count
	}
	s.fields += snapshot.Fields
	s.charsIn += snapshot.CharsIn
	s.charsOut += snapshot.CharsOut
	s.lowQuality += snapshot.LowQuality
}

// Snapshot is a point-in-time copy of the accumulator.
type Snapshot struct {
	ByMethod   map[string]int `json:"by_method"`
	Fields     int            `json:"fields"`
	CharsIn    int            `json:"chars_in"`
	CharsOut   int            `json:"chars_out"`
	LowQuality int            `json:"low_quality"`
}

// Snapshot returns a copy safe to read after the run continues.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Stats) snapshotLocked() Snapshot {
	byMethod := make(map[string]int, len(s.byMethod))
	for k, v := range s.byMethod {
		byMethod[k] = v
	}
	return Snapshot{
		ByMethod:   byMethod,
		Fields:     s.fields,
		CharsIn:    s.charsIn,
		CharsOut:   s.charsOut,
		LowQuality: s.lowQuality,
	}
}
