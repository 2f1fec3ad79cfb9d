// Package phase implements the per-agent six-phase state machine:
// InitialWallFind, BoundaryScouting, BoundaryAnalysis, IslandEscape,
// InteriorSweep and Idle. Each phase's handler returns a Transition value
// describing what should happen next rather than mutating the current
// phase itself; the Machine owns the current-phase field and applies the
// transition after every tick.
package phase

import (
	"github.com/boundaryrobots/mapexplore/internal/analyzer"
	"github.com/boundaryrobots/mapexplore/internal/cellmap"
	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/params"
	"github.com/boundaryrobots/mapexplore/internal/scout"
	"github.com/boundaryrobots/mapexplore/internal/wallfollow"
)

// Phase identifies one of the six states an agent can be in.
type Phase int

const (
	InitialWallFind Phase = iota
	BoundaryScouting
	BoundaryAnalysis
	IslandEscape
	InteriorSweep
	Idle
)

func (p Phase) String() string {
	switch p {
	case InitialWallFind:
		return "InitialWallFind"
	case BoundaryScouting:
		return "BoundaryScouting"
	case BoundaryAnalysis:
		return "BoundaryAnalysis"
	case IslandEscape:
		return "IslandEscape"
	case InteriorSweep:
		return "InteriorSweep"
	default:
		return "Idle"
	}
}

// Kind distinguishes the three shapes a Transition can take.
type Kind int

const (
	StayKind Kind = iota
	ToKind
	DoneKind
)

// Transition is the sum type every phase handler returns: Stay in the
// current phase, move To a named phase, or Done (terminal, Idle).
type Transition struct {
	Kind Kind
	Next Phase
}

// Stay keeps the machine in its current phase for this tick.
func Stay() Transition { return Transition{Kind: StayKind} }

// To moves the machine to the named phase, effective next tick.
func To(p Phase) Transition { return Transition{Kind: ToKind, Next: p} }

// Done ends the agent's active exploration; the machine settles in Idle.
func Done() Transition { return Transition{Kind: DoneKind} }

// Input is everything a phase handler needs to decide one tick's move
// and transition. It is built fresh by the caller (internal/agent) each
// tick from that tick's sense/exchange results.
type Input struct {
	Pos          geom.Point
	Orientation  float64
	GridMap      *cellmap.GridMap
	PartnerPos   geom.Point
	PartnerPhase Phase
	// PartnerRotation is only meaningful once both agents have reached
	// BoundaryAnalysis: it is the partner's RotationTotal from its own
	// just-finished scouting leg.
	PartnerRotation int
}

// Output is the result of one Machine.Step call.
type Output struct {
	NextPos         geom.Point
	NextOrientation float64
	Transition      Transition
	// Classification is set only on the tick BoundaryAnalysis resolves.
	Classification analyzer.Classification
}

// Machine drives one agent's phase. Phase-specific state (the active
// scouting leg, the escape walk) lives on the Machine and survives
// across ticks within a phase, and in BoundaryScouting's case across an
// inconclusive BoundaryAnalysis back to BoundaryScouting too. IslandEscape
// never returns to BoundaryScouting: it hands off only to InteriorSweep.
type Machine struct {
	Phase Phase

	scout         *scout.State
	boundaryTrace []geom.Point
	rotationTotal int

	escapeTicks int
	escapeAxis  geom.Point

	params params.Params
}

// New starts a machine in InitialWallFind, configured with p's
// CommunicationRange and InitialScoutDepth for every scouting leg it
// creates over the agent's lifetime.
func New(p params.Params) *Machine {
	return &Machine{Phase: InitialWallFind, params: p}
}

// effectiveParams falls back to the package defaults for a Machine built
// by a bare struct literal (as tests sitting mid-phase do) rather than
// via New, matching internal/config's own zero-value-means-default rule.
func (m *Machine) effectiveParams() params.Params {
	if m.params.InitialScoutDepth == 0 {
		return params.Defaults()
	}
	return m.params
}

// Step runs one tick of the current phase and applies the returned
// transition to the Machine's Phase field.
func (m *Machine) Step(in Input) Output {
	var out Output
	switch m.Phase {
	case InitialWallFind:
		out = m.stepInitialWallFind(in)
	case BoundaryScouting:
		out = m.stepBoundaryScouting(in)
	case BoundaryAnalysis:
		out = m.stepBoundaryAnalysis(in)
	case IslandEscape:
		out = m.stepIslandEscape(in)
	case InteriorSweep:
		out = m.stepInteriorSweep(in)
	default:
		out = Output{NextPos: in.Pos, NextOrientation: in.Orientation, Transition: Stay()}
	}

	switch out.Transition.Kind {
	case ToKind:
		m.Phase = out.Transition.Next
	case DoneKind:
		m.Phase = Idle
	}
	return out
}

// RotationTotal returns the rotation accumulated on the scouting leg that
// most recently ended in a rendezvous, used to exchange with the partner
// during BoundaryAnalysis gating.
func (m *Machine) RotationTotal() int {
	return m.rotationTotal
}

// stepInitialWallFind walks due North until an obstacle blocks the very
// next cell, then anchors a fresh scouting leg at its position and hands
// off to BoundaryScouting. This mirrors the original wall-finding phase,
// which walks a hard-coded direction regardless of the agent's starting
// orientation: there is no wall-following logic here at all, just a
// straight-line walk and a bump.
func (m *Machine) stepInitialWallFind(in Input) Output {
	forward := geom.Point{X: 0, Y: -1}
	ahead := in.Pos.Add(forward)
	if in.GridMap.InBounds(ahead.X, ahead.Y) && in.GridMap.AtOrObstacle(ahead.X, ahead.Y) != cellmap.Obstacle {
		return Output{NextPos: ahead, NextOrientation: geom.North, Transition: Stay()}
	}

	// Hit the wall: anchor a fresh scouting leg here and hand off.
	// BoundaryScouting's own first tick performs the chirality-fixing
	// first move, so the leg's recorded start and the agent's actual
	// position agree from the very first step.
	p := m.effectiveParams()
	m.scout = scout.New(in.Pos, p.InitialScoutDepth, p.CommunicationRange)
	return Output{NextPos: in.Pos, NextOrientation: geom.North, Transition: To(BoundaryScouting)}
}

func (m *Machine) stepBoundaryScouting(in Input) Output {
	if m.scout == nil {
		p := m.effectiveParams()
		m.scout = scout.New(in.Pos, p.InitialScoutDepth, p.CommunicationRange)
	}

	nextPos, nextOrientation, outcome := m.scout.Advance(in.Pos, in.Orientation, in.GridMap, in.PartnerPos)
	m.boundaryTrace = append(m.boundaryTrace, nextPos)

	switch outcome {
	case scout.Rendezvoused:
		m.rotationTotal = m.scout.RotationTotal()
		return Output{NextPos: nextPos, NextOrientation: nextOrientation, Transition: To(BoundaryAnalysis)}
	default:
		return Output{NextPos: nextPos, NextOrientation: nextOrientation, Transition: Stay()}
	}
}

// stepBoundaryAnalysis is gated: it only classifies once the partner has
// also arrived at BoundaryAnalysis, so both rotation totals are from the
// same rendezvous. Until then the agent waits in place.
func (m *Machine) stepBoundaryAnalysis(in Input) Output {
	if in.PartnerPhase != BoundaryAnalysis {
		return Output{NextPos: in.Pos, NextOrientation: in.Orientation, Transition: Stay()}
	}

	result := analyzer.Classify(m.rotationTotal, in.PartnerRotation)
	out := Output{NextPos: in.Pos, NextOrientation: in.Orientation, Classification: result}
	switch result {
	case analyzer.ExteriorWall:
		out.Transition = To(InteriorSweep)
	case analyzer.Island:
		m.escapeTicks = 0
		m.escapeAxis = escapeAxis(centroid(m.boundaryTrace), in.Pos)
		out.Transition = To(IslandEscape)
	default:
		// Inconclusive: resume the same scouting leg for another lap.
		out.Transition = To(BoundaryScouting)
	}
	return out
}

func (m *Machine) stepIslandEscape(in Input) Output {
	// escapeSteps bounds how long IslandEscape walks before handing off
	// to InteriorSweep; it only needs to clear the island's footprint,
	// not reach the exterior wall.
	escapeSteps := m.effectiveParams().InitialScoutDepth * 2
	dirs := escapeCandidates(m.escapeAxis)
	for _, d := range dirs {
		candidate := in.Pos.Add(d)
		if in.GridMap.InBounds(candidate.X, candidate.Y) && in.GridMap.AtOrObstacle(candidate.X, candidate.Y) != cellmap.Obstacle {
			m.escapeTicks++
			nextOrientation := geom.OrientationFromMove(d)
			if m.escapeTicks >= escapeSteps {
				return Output{NextPos: candidate, NextOrientation: nextOrientation, Transition: To(InteriorSweep)}
			}
			return Output{NextPos: candidate, NextOrientation: nextOrientation, Transition: Stay()}
		}
	}
	// Boxed in: give up the escape walk and sweep from where we stand.
	return Output{NextPos: in.Pos, NextOrientation: in.Orientation, Transition: To(InteriorSweep)}
}

func (m *Machine) stepInteriorSweep(in Input) Output {
	if in.PartnerPhase != InteriorSweep && in.PartnerPhase != Idle {
		return Output{NextPos: in.Pos, NextOrientation: in.Orientation, Transition: Stay()}
	}
	next, ok := wallfollow.Step(in.Pos, in.Orientation, in.GridMap, wallfollow.LeftHand)
	if !ok {
		return Output{NextPos: in.Pos, NextOrientation: in.Orientation, Transition: Done()}
	}
	nextOrientation := geom.OrientationFromMove(next.Sub(in.Pos))
	return Output{NextPos: next, NextOrientation: nextOrientation, Transition: Done()}
}

// centroid returns the mean of a set of points with each coordinate
// truncated to an integer, or the origin if the set is empty.
func centroid(pts []geom.Point) geom.Point {
	if len(pts) == 0 {
		return geom.Point{}
	}
	var sx, sy int
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	return geom.Point{X: sx / len(pts), Y: sy / len(pts)}
}

// escapeAxis picks the dominant cardinal direction pointing from the
// island's centroid out to pos: whichever axis has the larger magnitude
// displacement wins, ties broken toward the X axis.
func escapeAxis(c, pos geom.Point) geom.Point {
	d := pos.Sub(c)
	if abs(d.X) >= abs(d.Y) {
		if d.X < 0 {
			return geom.Point{X: -1}
		}
		return geom.Point{X: 1}
	}
	if d.Y < 0 {
		return geom.Point{Y: -1}
	}
	return geom.Point{Y: 1}
}

// escapeCandidates tries the centroid-derived axis first, then falls
// back to North, East, South, West in that fixed order.
func escapeCandidates(axis geom.Point) []geom.Point {
	fallback := []geom.Point{{Y: -1}, {X: 1}, {Y: 1}, {X: -1}}
	dirs := make([]geom.Point, 0, 5)
	dirs = append(dirs, axis)
	for _, f := range fallback {
		if f != axis {
			dirs = append(dirs, f)
		}
	}
	return dirs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
