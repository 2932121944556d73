package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(400, 20*time.Millisecond)
	c.Record(429, 0)
	c.Record(500, 30*time.Millisecond)
	c.RecordComputation()

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(4) {
		t.Fatalf("expected 4 requests, got %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"] != uint64(1) || snap["clientErrorsTotal"] != uint64(1) || snap["rateLimitedTotal"] != uint64(1) {
		t.Fatalf("unexpected error counters: %+v", snap)
	}
	if snap["avgDurationMs"] != float64(15) {
		t.Fatalf("expected avg 15ms, got %v", snap["avgDurationMs"])
	}
	if snap["computationsTotal"] != uint64(1) {
		t.Fatalf("expected 1 computation, got %v", snap["computationsTotal"])
	}
}

func TestCollectorConcurrentComputations(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := c.LiveSessionOpened()
			c.RecordComputation()
			done()
		}()
	}
	wg.Wait()
	snap := c.Snapshot()
	if snap["computationsTotal"] != uint64(50) {
		t.Fatalf("expected 50 computations, got %v", snap["computationsTotal"])
	}
	if snap["liveSessions"] != int64(0) {
		t.Fatalf("expected no open sessions, got %v", snap["liveSessions"])
	}
}
