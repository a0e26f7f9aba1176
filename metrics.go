package relago

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each add or add-or-get operation.
	// duration is the total time taken, err is nil if successful.
	RecordAdd(duration time.Duration, err error)

	// RecordLookup is called after each has/get/try-get operation.
	// hit reports whether the relationship existed.
	RecordLookup(duration time.Duration, hit bool)

	// RecordRemove is called after each remove operation.
	RecordRemove(duration time.Duration, err error)

	// RecordCascade is called after a destruction cascade.
	// partners is the number of partner entities whose containers were updated.
	RecordCascade(partners int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)    {}
func (NoopMetricsCollector) RecordLookup(time.Duration, bool)  {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error) {}
func (NoopMetricsCollector) RecordCascade(int, time.Duration)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount        atomic.Int64
	AddErrors       atomic.Int64
	AddTotalNanos   atomic.Int64
	LookupCount     atomic.Int64
	LookupMisses    atomic.Int64
	RemoveCount     atomic.Int64
	RemoveErrors    atomic.Int64
	CascadeCount    atomic.Int64
	CascadePartners atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(duration time.Duration, hit bool) {
	b.LookupCount.Add(1)
	if !hit {
		b.LookupMisses.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordCascade implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCascade(partners int, duration time.Duration) {
	b.CascadeCount.Add(1)
	b.CascadePartners.Add(int64(partners))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:        b.AddCount.Load(),
		AddErrors:       b.AddErrors.Load(),
		AddAvgNanos:     b.getAvgAddNanos(),
		LookupCount:     b.LookupCount.Load(),
		LookupMisses:    b.LookupMisses.Load(),
		RemoveCount:     b.RemoveCount.Load(),
		RemoveErrors:    b.RemoveErrors.Load(),
		CascadeCount:    b.CascadeCount.Load(),
		CascadePartners: b.CascadePartners.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgAddNanos() int64 {
	count := b.AddCount.Load()
	if count == 0 {
		return 0
	}
	return b.AddTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount        int64
	AddErrors       int64
	AddAvgNanos     int64
	LookupCount     int64
	LookupMisses    int64
	RemoveCount     int64
	RemoveErrors    int64
	CascadeCount    int64
	CascadePartners int64
}
