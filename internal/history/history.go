// Package history records one Snapshot per simulation tick and
// rebroadcasts them to any live subscribers (internal/visualize), while
// keeping the full append-only log for post-run export.
package history

import (
	"encoding/json"
	"sync"

	"github.com/boundaryrobots/mapexplore/internal/cellmap"
	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/phase"
)

// AgentSnapshot is one agent's recorded state at a tick, including a
// clone of its own private map — the two agents' maps can and do diverge
// until their next exchange, so the live feed and the exported history
// need one per agent rather than a single map shared across both.
type AgentSnapshot struct {
	Pos         geom.Point       `json:"pos"`
	Orientation float64          `json:"orientation"`
	Phase       phase.Phase      `json:"phase"`
	Map         *cellmap.GridMap `json:"map"`
}

// Snapshot is a complete record of one simulation tick, deep-copied so it
// is safe to read after the tick that produced it has moved on.
type Snapshot struct {
	Tick   int             `json:"tick"`
	Agents []AgentSnapshot `json:"agents"`
	// KnownCells/EmptyCells are exported redundantly for JSON consumers,
	// taken from the first agent's merged knowledge at record time.
	KnownCells int `json:"knownCells"`
	EmptyCells int `json:"emptyCells"`
}

// Recorder is the append-only log plus its subscriber set. Only the
// simulation goroutine ever calls Record; Subscribe/Snapshots may be
// called concurrently by a feed goroutine.
type Recorder struct {
	mu        sync.RWMutex
	snapshots []Snapshot
	subs      []chan Snapshot
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a snapshot and pushes it to every subscriber without
// blocking: a subscriber slow enough to have a full buffer just misses
// this tick's update, since snapshots are idempotent full-state records
// and the next one fully supersedes it.
func (r *Recorder) Record(s Snapshot) {
	r.mu.Lock()
	r.snapshots = append(r.snapshots, s)
	subs := make([]chan Snapshot, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub <- s:
		default:
		}
	}
}

// Subscribe returns a channel that receives every subsequent snapshot on
// a best-effort basis. The channel is buffered so a momentary stall
// doesn't drop the very next tick, but Record never blocks on it.
func (r *Recorder) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 4)
	r.mu.Lock()
	r.subs = append(r.subs, ch)
	r.mu.Unlock()
	return ch
}

// Snapshots returns the full recorded history so far.
func (r *Recorder) Snapshots() []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Snapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

// ExportJSON marshals the full history for replay or offline analysis.
func (r *Recorder) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(r.Snapshots(), "", "  ")
}
