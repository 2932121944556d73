package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	clientErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64
	computations    uint64
	liveSessions    int64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordComputation counts one payroll computation, whatever the transport.
func (c *Collector) RecordComputation() {
	atomic.AddUint64(&c.computations, 1)
}

// LiveSessionOpened tracks open websocket sessions; call the returned func on
// close.
func (c *Collector) LiveSessionOpened() func() {
	atomic.AddInt64(&c.liveSessions, 1)
	return func() { atomic.AddInt64(&c.liveSessions, -1) }
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	clientErrs := atomic.LoadUint64(&c.clientErrors)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       errs,
		"clientErrorsTotal": clientErrs,
		"rateLimitedTotal":  limited,
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"computationsTotal": atomic.LoadUint64(&c.computations),
		"liveSessions":      atomic.LoadInt64(&c.liveSessions),
	}
}
