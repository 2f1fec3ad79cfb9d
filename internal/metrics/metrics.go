// Package metrics holds the simulation's lock-free counters: a tick rate
// gauge written by the simulation goroutine and read by the optional
// live-feed goroutine, so the two never contend over a mutex for a value
// that only ever needs eventual consistency.
package metrics

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Gauge is a float64 updated and read without locks. The simulation
// goroutine is its sole writer; the feed goroutine (internal/visualize)
// is a read-only observer. This mirrors the teacher's AtomicFloat64:
// CompareAndSwap on the float's bit pattern rather than a mutex, since
// losing a racing update to a monotonically-recomputed rate is harmless
// and retrying would just recompute the same value anyway.
type Gauge struct {
	bits uint64
}

// NewGauge returns a Gauge initialized to val.
func NewGauge(val float64) *Gauge {
	g := &Gauge{}
	g.Set(val)
	return g
}

// Read atomically loads the current value.
func (g *Gauge) Read() float64 {
	return math.Float64frombits(atomic.LoadUint64(&g.bits))
}

// Set atomically stores val, discarding whatever was there before.
func (g *Gauge) Set(val float64) {
	atomic.StoreUint64(&g.bits, math.Float64bits(val))
}

// CompareAndSwap sets val only if the gauge still holds old, mirroring
// AtomicFloat64.AtomicSet: the caller decides whether to retry or drop
// the update on failure.
func (g *Gauge) CompareAndSwap(old, val float64) bool {
	return atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&g.bits)),
		math.Float64bits(old),
		math.Float64bits(val))
}

// TickRate tracks ticks-per-second from the duration of the most recently
// observed tick, exposed as a Gauge for the feed to poll.
type TickRate struct {
	gauge *Gauge
	count uint64
}

// NewTickRate returns a zeroed TickRate.
func NewTickRate() *TickRate {
	return &TickRate{gauge: NewGauge(0)}
}

// Observe records that one simulation tick took elapsed seconds and
// updates the gauge to 1/elapsed (0 if elapsed is non-positive, e.g. a
// stalled clock).
func (tr *TickRate) Observe(elapsedSeconds float64) {
	atomic.AddUint64(&tr.count, 1)
	if elapsedSeconds <= 0 {
		tr.gauge.Set(0)
		return
	}
	tr.gauge.Set(1.0 / elapsedSeconds)
}

// Rate returns the most recently observed ticks-per-second.
func (tr *TickRate) Rate() float64 {
	return tr.gauge.Read()
}

// Count returns the total number of ticks observed so far.
func (tr *TickRate) Count() uint64 {
	return atomic.LoadUint64(&tr.count)
}
