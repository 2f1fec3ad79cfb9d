// Package simulation runs the cooperative two-agent exploration to
// completion: a single-threaded, deterministic tick loop (sense,
// exchange, record, act) plus termination detection. The only sanctioned
// concurrency is an optional live-feed goroutine (internal/visualize),
// joined by the caller via errgroup, that only ever reads completed
// history snapshots — it never touches Manager or Agent state directly.
package simulation

import (
	"time"

	"github.com/boundaryrobots/mapexplore/internal/agent"
	"github.com/boundaryrobots/mapexplore/internal/analyzer"
	"github.com/boundaryrobots/mapexplore/internal/cellmap"
	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/history"
	"github.com/boundaryrobots/mapexplore/internal/metrics"
	"github.com/boundaryrobots/mapexplore/internal/params"
	"github.com/boundaryrobots/mapexplore/internal/phase"
)

// Manager owns the ground-truth world, the two agents, and the run's
// recorded history. It is a plain value, not a singleton: nothing about
// it is process-global, per the "no cyclic ownership, no singletons"
// design note.
type Manager struct {
	World    *cellmap.GridMap
	Agents   [2]*agent.Agent
	Recorder *history.Recorder
	TickRate *metrics.TickRate
	TickCap  int

	// Classifications records every decisive boundary-analysis verdict
	// reached over the run, in order.
	Classifications []analyzer.Classification

	tick int
}

// NewManager builds a Manager for a world and a pair of start positions.
// Agents start facing North: InitialWallFind always walks due North
// regardless of orientation, so this is the pose the two agree with from
// their very first tick rather than one InitialWallFind has to correct.
// p's CommunicationRange and InitialScoutDepth are threaded into both
// agents, so a config override reaches every phase and scouting leg.
func NewManager(world *cellmap.GridMap, start0, start1 geom.Point, tickCap int, p params.Params) *Manager {
	return &Manager{
		World: world,
		Agents: [2]*agent.Agent{
			agent.New(0, 1, start0, geom.North, world.Width, world.Height, p),
			agent.New(1, 0, start1, geom.North, world.Width, world.Height, p),
		},
		Recorder: history.NewRecorder(),
		TickRate: metrics.NewTickRate(),
		TickCap:  tickCap,
	}
}

// Done reports whether the run has reached a terminal state: every agent
// Idle, or the tick cap has elapsed.
func (m *Manager) Done() bool {
	if m.tick >= m.TickCap {
		return true
	}
	for _, a := range m.Agents {
		if !a.Idle() {
			return false
		}
	}
	return true
}

// Tick runs exactly one sense/exchange/record/act step. It is exported
// so a caller (the CLI, or a test) can single-step the simulation rather
// than only running it to completion.
func (m *Manager) Tick() {
	start := time.Now()

	for _, a := range m.Agents {
		a.Sense(m.World)
	}

	a0, a1 := m.Agents[0], m.Agents[1]
	if a0.InRange(a1) {
		a0.Exchange(a1)
	}

	m.recordSnapshot()

	// Snapshot partner state before either agent acts, so neither
	// agent's in-tick move is visible to the other this same tick —
	// communication has a one-tick minimum latency by construction.
	pos := [2]geom.Point{a0.Pos, a1.Pos}
	phases := [2]phase.Phase{a0.Phase(), a1.Phase()}
	rotations := [2]int{a0.RotationTotal(), a1.RotationTotal()}

	for i, a := range m.Agents {
		partner := 1 - i
		out := a.Act(m.World, pos[partner], phases[partner], rotations[partner])
		if out.Classification == analyzer.ExteriorWall || out.Classification == analyzer.Island {
			m.Classifications = append(m.Classifications, out.Classification)
		}
	}

	m.tick++
	m.TickRate.Observe(time.Since(start).Seconds())
}

// Run ticks the simulation until Done, returning the number of ticks
// actually executed.
func (m *Manager) Run() int {
	for !m.Done() {
		m.Tick()
	}
	return m.tick
}

func (m *Manager) recordSnapshot() {
	snap := history.Snapshot{Tick: m.tick}
	for _, a := range m.Agents {
		snap.Agents = append(snap.Agents, history.AgentSnapshot{
			Pos:         a.Pos,
			Orientation: a.Orientation,
			Phase:       a.Phase(),
			Map:         a.Map.Clone(),
		})
	}
	snap.KnownCells = m.Agents[0].Map.CountKnown()
	snap.EmptyCells = m.Agents[0].Map.CountEmpty()
	m.Recorder.Record(snap)
}

// TickCount returns the number of ticks executed so far.
func (m *Manager) TickCount() int {
	return m.tick
}
