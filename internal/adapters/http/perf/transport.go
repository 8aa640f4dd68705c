package perf

import (
	"log/slog"
	"net/http"
	"time"
)

// SlowStoreCallMs is the threshold above which a hosted store call is logged at WARN.
const SlowStoreCallMs = 1000

// Transport times every outbound request and records it as KindStore.
type Transport struct {
	Base      http.RoundTripper
	Collector *Collector
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, c *Collector) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Collector: c}
}

// RoundTrip implements http.RoundTripper.
// POST: exactly one entry is recorded per call, with status 0 on transport failure
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Base.RoundTrip(req)
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	label := req.Method + " " + req.URL.Host + req.URL.Path

	if durationMs >= SlowStoreCallMs {
		slog.Warn("slow_store_call", "call", label, "status", status, "duration_ms", durationMs)
	}
	if t.Collector != nil {
		t.Collector.Record(Entry{
			Kind:       KindStore,
			Label:      label,
			StatusCode: status,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
	return resp, err
}
