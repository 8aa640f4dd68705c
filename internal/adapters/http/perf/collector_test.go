package perf

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestCollector_SnapshotGroupsByKind(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Label: "GET /", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Label: "GET /", StatusCode: 502, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Label: "SELECT settings", DurationMs: 5, Timestamp: now})
	c.Record(Entry{Kind: KindStore, Label: "PUT fn/content", StatusCode: 200, DurationMs: 120, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRecorded != 4 {
		t.Errorf("TotalRecorded = %d, want 4", snap.TotalRecorded)
	}
	req := snap.ByKind["request"]
	if len(req) != 1 {
		t.Fatalf("request stats = %v", req)
	}
	if req[0].AvgMs != 20 || req[0].MaxMs != 30 || req[0].Errors != 1 {
		t.Errorf("request stat = %+v", req[0])
	}
	if len(snap.ByKind["query"]) != 1 || len(snap.ByKind["store"]) != 1 {
		t.Errorf("by kind = %v", snap.ByKind)
	}
}

func TestCollector_RingBufferOverwrites(t *testing.T) {
	c := NewCollector(3)
	now := time.Now()
	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Label: "GET /x", DurationMs: float64(i), Timestamp: now})
	}
	if c.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded = %d, want 5", c.TotalRecorded())
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if got := snap.ByKind["request"][0].Count; got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestCollector_SinceAndTopN(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()
	c.Record(Entry{Kind: KindRequest, Label: "GET /old", DurationMs: 500, Timestamp: now.Add(-time.Hour)})
	c.Record(Entry{Kind: KindRequest, Label: "GET /a", DurationMs: 1, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Label: "GET /b", DurationMs: 2, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 1)
	got := snap.ByKind["request"]
	if len(got) != 1 || got[0].Label != "GET /b" {
		t.Errorf("top = %+v, want only GET /b", got)
	}
}

func TestPercentile(t *testing.T) {
	sorted := make([]float64, 100)
	for i := range sorted {
		sorted[i] = float64(i + 1)
	}
	if p := percentile(sorted, 95); p < 94 || p > 96 {
		t.Errorf("p95 = %v", p)
	}
	if percentile(nil, 50) != 0 {
		t.Error("empty percentile should be 0")
	}
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Record(Entry{Kind: KindQuery, Label: "q", Timestamp: time.Now()})
			}
		}()
	}
	wg.Wait()
	if c.TotalRecorded() != 800 {
		t.Errorf("TotalRecorded = %d, want 800", c.TotalRecorded())
	}
}

func TestTransport_RecordsStoreCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewCollector(10)
	client := &http.Client{Transport: NewTransport(nil, c)}
	resp, err := client.Get(srv.URL + "/content?type=gallery")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	snap := c.Snapshot(time.Now().Add(-time.Minute), 10)
	store := snap.ByKind["store"]
	if len(store) != 1 {
		t.Fatalf("store stats = %v", snap.ByKind)
	}
	if store[0].Errors != 1 {
		t.Errorf("Errors = %d, want 1", store[0].Errors)
	}
}
