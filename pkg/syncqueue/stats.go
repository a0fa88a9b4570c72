package syncqueue

import (
	"sync"
	"sync/atomic"
	"time"
)

// stats holds the always-on operation counters. Counters are atomic so the
// hot path never takes the stats mutex; the mutex only guards the
// max-length watermark and the start time.
type stats struct {
	writes    atomic.Int64
	reads     atomic.Int64
	evictions atomic.Int64
	taken     atomic.Int64

	mu        sync.Mutex
	maxLen    int
	startTime time.Time
}

func newStats() *stats {
	return &stats{startTime: time.Now()}
}

func (s *stats) recordWrite(evicted bool, length int) {
	s.writes.Add(1)
	if evicted {
		s.evictions.Add(1)
	}
	s.mu.Lock()
	if length > s.maxLen {
		s.maxLen = length
	}
	s.mu.Unlock()
}

func (s *stats) recordRead() {
	s.reads.Add(1)
}

func (s *stats) recordTaken(n int) {
	if n > 0 {
		s.taken.Add(int64(n))
	}
}

func (s *stats) reset() {
	s.writes.Store(0)
	s.reads.Store(0)
	s.evictions.Store(0)
	s.taken.Store(0)
	s.mu.Lock()
	s.maxLen = 0
	s.startTime = time.Now()
	s.mu.Unlock()
}

// StatsSummary is a point-in-time snapshot of a queue's counters, shaped
// for JSON output.
type StatsSummary struct {
	Writes       int64   `json:"writes"`
	Reads        int64   `json:"reads"`
	Evictions    int64   `json:"evictions"`
	Taken        int64   `json:"taken"`
	EvictionRate float64 `json:"eviction_rate"`
	Len          int     `json:"len"`
	Capacity     int     `json:"capacity"`
	Utilization  float64 `json:"utilization"`
	MaxLen       int     `json:"max_len"`
	Uptime       string  `json:"uptime"`
}

func (s *stats) summary(length, capacity int) StatsSummary {
	writes := s.writes.Load()
	evictions := s.evictions.Load()

	var evictionRate float64
	if writes > 0 {
		evictionRate = float64(evictions) / float64(writes)
	}
	var utilization float64
	if capacity > 0 {
		utilization = float64(length) / float64(capacity)
	}

	s.mu.Lock()
	maxLen := s.maxLen
	uptime := time.Since(s.startTime)
	s.mu.Unlock()

	return StatsSummary{
		Writes:       writes,
		Reads:        s.reads.Load(),
		Evictions:    evictions,
		Taken:        s.taken.Load(),
		EvictionRate: evictionRate,
		Len:          length,
		Capacity:     capacity,
		Utilization:  utilization,
		MaxLen:       maxLen,
		Uptime:       uptime.String(),
	}
}
