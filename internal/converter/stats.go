package converter

import (
	"sort"
	"sync"
)

// Stat describes a single successfully performed file conversion.
type Stat struct {
	Path          string // source file path, relative to the searching base
	Format        string // source image format name (`jpeg` or `png`)
	OriginalSize  uint64 // source file size, bytes
	ConvertedSize uint64 // WebP file size, bytes
}

// StatsStorage accumulates per-file conversion results. It is safe for concurrent use.
type StatsStorage struct {
	mu      sync.Mutex
	history []Stat
}

// NewStatsStorage creates new StatsStorage instance.
func NewStatsStorage() *StatsStorage {
	return &StatsStorage{history: make([]Stat, 0, 8)}
}

// Push appends a conversion result to the storage.
func (s *StatsStorage) Push(stat Stat) {
	s.mu.Lock()
	s.history = append(s.history, stat)
	s.mu.Unlock()
}

// History returns a copy of all pushed entries, ordered by the file path (concurrent workers
// push their results in a random order).
func (s *StatsStorage) History() []Stat {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Stat, len(s.history))
	copy(out, s.history)

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}

// TotalFiles returns the count of the performed conversions.
func (s *StatsStorage) TotalFiles() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.history)
}

// TotalOriginalSize returns the summary size of all source files, bytes.
func (s *StatsStorage) TotalOriginalSize() (total uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.history {
		total += s.history[i].OriginalSize
	}

	return
}

// TotalConvertedSize returns the summary size of all created WebP files, bytes.
func (s *StatsStorage) TotalConvertedSize() (total uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.history {
		total += s.history[i].ConvertedSize
	}

	return
}

// TotalSavedBytes returns the byte difference between the source and the created files (negative
// when the WebP files came out bigger).
func (s *StatsStorage) TotalSavedBytes() int64 {
	return int64(s.TotalOriginalSize()) - int64(s.TotalConvertedSize())
}
