// Package scout implements one agent's boundary-scouting leg: an
// outbound wall-follow of N steps followed by a retrace back to the
// leg's start, with leg length doubling on every return and rendezvous
// detection along the way.
package scout

import (
	"github.com/boundaryrobots/mapexplore/internal/cellmap"
	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/rotation"
	"github.com/boundaryrobots/mapexplore/internal/wallfollow"
)

// Outcome reports what happened on one Advance call.
type Outcome int

const (
	// Continue means the leg is ongoing (outbound or returning).
	Continue Outcome = iota
	// LegComplete means the agent arrived back at the leg start; Depth
	// has already been doubled and a new leg has begun.
	LegComplete
	// Rendezvoused means the agent met its partner during an outbound
	// step; the scout state is left untouched for the analyzer to read.
	Rendezvoused
	// Stalled means the wall follower found no legal move; the agent
	// stays in place for this tick.
	Stalled
)

// State is the per-leg scouting state. It is held by phase.Machine, which
// creates it when InitialWallFind hands off to BoundaryScouting and keeps
// it afterwards, including across BoundaryAnalysis.
type State struct {
	Depth        int
	StepsThisLeg int
	Returning    bool
	Path         []geom.Point
	FirstMove    bool

	chiralitySet bool
	chirality    wallfollow.Chirality

	hasInitialDirection bool
	initialDirection    geom.Point

	rotation  rotation.Tracker
	commRange int
}

// New starts the first leg at start with the given initial depth.
// commRange is the Manhattan distance within which a partner sighting
// counts as a rendezvous, normally params.CommunicationRange or a
// config override of it.
func New(start geom.Point, depth, commRange int) *State {
	return &State{
		Depth:     depth,
		Path:      []geom.Point{start},
		FirstMove: true,
		commRange: commRange,
	}
}

// Start returns the leg's anchor cell (always Path[0]).
func (s *State) Start() geom.Point {
	return s.Path[0]
}

// RotationTotal returns the rotation accumulated so far on the current leg.
func (s *State) RotationTotal() int {
	return s.rotation.Total()
}

// Advance runs one tick of the leg's state machine per spec.md §4.5:
//  1. Outbound, steps_this_leg < Depth, !Returning: wall-follow one step.
//  2. At depth: flip to Returning, reset the per-leg step counter.
//  3. Return: retrace one cell back along Path.
//  4. Back at start: double Depth, clear Path to {start}, begin next leg.
//
// pos/orientation are the agent's current pose; gm is its private map;
// partnerPos is read from this tick's snapshot of the partner agent.
func (s *State) Advance(pos geom.Point, orientation float64, gm *cellmap.GridMap, partnerPos geom.Point) (nextPos geom.Point, nextOrientation float64, outcome Outcome) {
	if s.Returning {
		return s.advanceReturn(pos, orientation)
	}
	if s.StepsThisLeg == s.Depth {
		s.Returning = true
		s.StepsThisLeg = 0
		return pos, orientation, Continue
	}
	return s.advanceOutbound(pos, orientation, gm, partnerPos)
}

func (s *State) advanceOutbound(pos geom.Point, orientation float64, gm *cellmap.GridMap, partnerPos geom.Point) (geom.Point, float64, Outcome) {
	var next geom.Point
	var ok bool

	if s.FirstMove {
		next, ok = s.firstMoveStep(pos, orientation, gm, partnerPos)
	} else {
		next, ok = wallfollow.Step(pos, orientation, gm, s.chirality)
	}
	if !ok {
		return pos, orientation, Stalled
	}

	wasFirstMove := s.FirstMove
	nextOrientation := geom.OrientationFromMove(next.Sub(pos))

	s.rotation.Add(orientation, nextOrientation)
	s.Path = append(s.Path, next)
	s.StepsThisLeg++
	if wasFirstMove {
		s.rotation.Reset()
	}
	s.FirstMove = false

	if !wasFirstMove && s.rendezvous(next, partnerPos) {
		return next, nextOrientation, Rendezvoused
	}
	return next, nextOrientation, Continue
}

// firstMoveStep reuses the recorded initial direction from the agent's
// very first leg if it is still open; otherwise it falls back to a
// normal wall-follow step (if chirality is already fixed) or computes
// the chirality-fixing first move (if this is the agent's first-ever step).
func (s *State) firstMoveStep(pos geom.Point, orientation float64, gm *cellmap.GridMap, partnerPos geom.Point) (geom.Point, bool) {
	if s.hasInitialDirection {
		candidate := pos.Add(s.initialDirection)
		if open(candidate, gm) {
			return candidate, true
		}
		if s.chiralitySet {
			return wallfollow.Step(pos, orientation, gm, s.chirality)
		}
	}

	next, chirality, ok := wallfollow.FirstMove(pos, orientation, gm, partnerPos)
	if !ok {
		return pos, false
	}
	s.chirality = chirality
	s.chiralitySet = true
	if !s.hasInitialDirection {
		s.initialDirection = next.Sub(pos)
		s.hasInitialDirection = true
	}
	return next, true
}

func (s *State) advanceReturn(pos geom.Point, orientation float64) (geom.Point, float64, Outcome) {
	if len(s.Path) > 1 {
		target := s.Path[len(s.Path)-2]
		s.Path = s.Path[:len(s.Path)-1]
		nextOrientation := geom.OrientationFromMove(target.Sub(pos))
		return target, nextOrientation, Continue
	}

	// Back at the leg start: double the depth and begin the next leg.
	s.Depth *= 2
	start := s.Path[0]
	s.Path = []geom.Point{start}
	s.Returning = false
	s.StepsThisLeg = 0
	s.FirstMove = true
	return pos, orientation, LegComplete
}

func (s *State) rendezvous(a, b geom.Point) bool {
	return a != b && a.ManhattanDistance(b) <= s.commRange
}

func open(p geom.Point, gm *cellmap.GridMap) bool {
	return gm.InBounds(p.X, p.Y) && gm.AtOrObstacle(p.X, p.Y) != cellmap.Obstacle
}
