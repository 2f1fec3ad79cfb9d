// Package agent wires the geometry, private map, and phase machine
// together into one simulated robot: sense the four cardinal neighbors,
// merge knowledge with a nearby partner, then ask the phase machine for
// this tick's move.
package agent

import (
	"github.com/boundaryrobots/mapexplore/internal/cellmap"
	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/params"
	"github.com/boundaryrobots/mapexplore/internal/phase"
)

// Agent is one of the two cooperating explorers.
type Agent struct {
	ID          int
	PartnerID   int
	Pos         geom.Point
	Orientation float64
	Map         *cellmap.GridMap
	Machine     *phase.Machine

	commRange int
}

// New creates an agent with a freshly allocated, all-Unexplored private
// map of the given world dimensions, starting in InitialWallFind. p's
// CommunicationRange gates InRange and is threaded into the phase
// machine for its own rendezvous checks; p's InitialScoutDepth seeds
// every scouting leg the machine starts.
func New(id, partnerID int, start geom.Point, orientation float64, worldWidth, worldHeight int, p params.Params) *Agent {
	return &Agent{
		ID:          id,
		PartnerID:   partnerID,
		Pos:         start,
		Orientation: orientation,
		Map:         cellmap.New(worldWidth, worldHeight),
		Machine:     phase.New(p),
		commRange:   p.CommunicationRange,
	}
}

// Sense reveals the agent's own cell and its four cardinal neighbors from
// the ground-truth world into the agent's private map.
func (a *Agent) Sense(world *cellmap.GridMap) {
	a.reveal(world, a.Pos)
	for _, d := range []geom.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		a.reveal(world, a.Pos.Add(d))
	}
}

func (a *Agent) reveal(world *cellmap.GridMap, p geom.Point) {
	if !world.InBounds(p.X, p.Y) {
		return
	}
	a.Map.Set(p.X, p.Y, world.At(p.X, p.Y))
}

// InRange reports whether other is within communication range for map
// exchange and phase-gating this tick.
func (a *Agent) InRange(other *Agent) bool {
	return a.Pos.ManhattanDistance(other.Pos) <= a.commRange
}

// Exchange merges each agent's private map into the other's, in place.
// Callers should only invoke this when InRange reports true.
func (a *Agent) Exchange(other *Agent) {
	a.Map.MergeFrom(other.Map)
	other.Map.MergeFrom(a.Map)
}

// Phase returns the agent's current phase, for partner-gating decisions.
func (a *Agent) Phase() phase.Phase {
	return a.Machine.Phase
}

// RotationTotal returns the rotation accumulated on the agent's scouting
// leg that most recently ended in a rendezvous, exchanged with the
// partner during BoundaryAnalysis gating.
func (a *Agent) RotationTotal() int {
	return a.Machine.RotationTotal()
}

// Act asks the phase machine for this tick's move, using the agent's own
// private map for the decision. partnerPos, partnerPhase and
// partnerRotation are passed to the phase machine as given (the
// simulation passes its snapshot of the partner taken before either
// agent acts); Act applies no communication-range check to them, so the
// gated phases see the partner's phase at any distance. The proposed move is applied
// only if the ground truth agrees the destination is not an obstacle;
// otherwise the agent's private map is corrected and it holds position
// for this tick, to be re-decided next tick with better knowledge.
func (a *Agent) Act(world *cellmap.GridMap, partnerPos geom.Point, partnerPhase phase.Phase, partnerRotation int) phase.Output {
	out := a.Machine.Step(phase.Input{
		Pos:             a.Pos,
		Orientation:     a.Orientation,
		GridMap:         a.Map,
		PartnerPos:      partnerPos,
		PartnerPhase:    partnerPhase,
		PartnerRotation: partnerRotation,
	})

	if out.NextPos != a.Pos {
		if !world.InBounds(out.NextPos.X, out.NextPos.Y) || world.At(out.NextPos.X, out.NextPos.Y) == cellmap.Obstacle {
			if world.InBounds(out.NextPos.X, out.NextPos.Y) {
				a.Map.Set(out.NextPos.X, out.NextPos.Y, cellmap.Obstacle)
			}
			return out
		}
	}

	a.Pos = out.NextPos
	a.Orientation = out.NextOrientation
	return out
}

// Idle reports whether the agent has reached its terminal phase.
func (a *Agent) Idle() bool {
	return a.Machine.Phase == phase.Idle
}
