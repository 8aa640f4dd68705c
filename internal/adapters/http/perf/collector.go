// Package perf keeps a bounded in-memory record of request, local query and hosted store timings.
package perf

import (
	"math"
	"sort"
	"sync"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 4096

// Kind distinguishes what was timed.
type Kind uint8

const (
	// KindRequest is an inbound page or API request.
	KindRequest Kind = iota
	// KindQuery is a local SQLite statement.
	KindQuery
	// KindStore is an outbound call to a hosted store.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindQuery:
		return "query"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// Entry is a single timing record.
type Entry struct {
	Kind       Kind
	Label      string // "GET /admin", "SELECT settings", "PUT fn.example/content"
	StatusCode int    // 0 for queries
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer of entries. When full, the oldest entry is overwritten.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	pos     int
	total   int64
}

// NewCollector creates a collector holding at most size entries.
// POST: size <= 0 falls back to DefaultRingSize
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores e, overwriting the oldest entry when full.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % len(c.entries)
	c.total++
	c.mu.Unlock()
}

// TotalRecorded returns how many entries were ever recorded.
func (c *Collector) TotalRecorded() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Stat aggregates timings for one label.
type Stat struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Errors int     `json:"errors"`
	AvgMs  float64 `json:"avg_ms"`
	MaxMs  float64 `json:"max_ms"`
	P95Ms  float64 `json:"p95_ms"`
}

// Snapshot is the aggregated view served to the admin diagnostics endpoint.
type Snapshot struct {
	TotalRecorded int64             `json:"total_recorded"`
	Since         time.Time         `json:"since"`
	ByKind        map[string][]Stat `json:"by_kind"`
}

// Snapshot aggregates entries newer than since, keeping the topN slowest labels per kind.
// An entry with StatusCode >= 400 counts as an error.
// INVARIANT: the ring buffer is not mutated
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, len(c.entries))
	copy(buf, c.entries)
	total := c.total
	c.mu.Unlock()

	type acc struct {
		durations []float64
		errors    int
	}
	groups := make(map[Kind]map[string]*acc)
	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		byLabel, ok := groups[e.Kind]
		if !ok {
			byLabel = make(map[string]*acc)
			groups[e.Kind] = byLabel
		}
		a, ok := byLabel[e.Label]
		if !ok {
			a = &acc{}
			byLabel[e.Label] = a
		}
		a.durations = append(a.durations, e.DurationMs)
		if e.StatusCode >= 400 {
			a.errors++
		}
	}

	snap := Snapshot{TotalRecorded: total, Since: since, ByKind: make(map[string][]Stat)}
	for kind, byLabel := range groups {
		stats := make([]Stat, 0, len(byLabel))
		for label, a := range byLabel {
			sort.Float64s(a.durations)
			var sum float64
			for _, d := range a.durations {
				sum += d
			}
			stats = append(stats, Stat{
				Label:  label,
				Count:  len(a.durations),
				Errors: a.errors,
				AvgMs:  sum / float64(len(a.durations)),
				MaxMs:  a.durations[len(a.durations)-1],
				P95Ms:  percentile(a.durations, 95),
			})
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i].AvgMs > stats[j].AvgMs })
		if topN > 0 && len(stats) > topN {
			stats = stats[:topN]
		}
		snap.ByKind[kind.String()] = stats
	}
	return snap
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
