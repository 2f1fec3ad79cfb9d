// Package wallfollow implements the fixed-priority neighbor scan that
// drives one step of wall-following for a given chirality.
package wallfollow

import (
	"github.com/boundaryrobots/mapexplore/internal/cellmap"
	"github.com/boundaryrobots/mapexplore/internal/geom"
)

// Chirality selects which side of the robot the wall stays on.
type Chirality int

const (
	// LeftHand keeps the wall on the robot's left (counterclockwise tracing).
	LeftHand Chirality = -1
	// RightHand keeps the wall on the robot's right (clockwise tracing).
	RightHand Chirality = 1
)

// Step scans the four local-frame neighbors in the chirality's fixed
// priority order and returns the first in-bounds, non-obstacle cell. ok
// is false if all four are blocked.
func Step(pos geom.Point, orientation float64, gm *cellmap.GridMap, chirality Chirality) (next geom.Point, ok bool) {
	forward := geom.DirectionVector(orientation)
	for _, delta := range priorities(forward, chirality) {
		candidate := pos.Add(delta)
		if isOpen(candidate, gm) {
			return candidate, true
		}
	}
	return pos, false
}

// priorities returns Forward/Back/Left/Right deltas in scan order for the
// given chirality. Left-hand (wall on the left): Right, Forward, Left, Back.
// Right-hand (wall on the right): Left, Forward, Right, Back.
func priorities(forward geom.Point, chirality Chirality) [4]geom.Point {
	left := geom.Left(forward)
	right := geom.Right(forward)
	back := geom.Back(forward)
	if chirality == LeftHand {
		return [4]geom.Point{right, forward, left, back}
	}
	return [4]geom.Point{left, forward, right, back}
}

// FirstMove resolves the chirality-free first step away from a wall the
// agent has just hit: the partner's side determines which way it
// prefers to turn. If the partner is on the right (cross product of
// forward with to-partner is positive), the agent prefers turning Left;
// otherwise (including the dead-ahead/dead-behind tie, cross product
// exactly zero) it prefers Right. That preference only picks a search
// order, though — the chirality actually fixed for the rest of the leg
// is re-derived from whichever candidate turns out to be open, via
// chiralityFromMove, so a blocked preferred turn can't leave Step
// scanning in the wrong sense for the move that was actually taken.
func FirstMove(pos geom.Point, orientation float64, gm *cellmap.GridMap, partnerPos geom.Point) (next geom.Point, chirality Chirality, ok bool) {
	forward := geom.DirectionVector(orientation)
	toPartner := partnerPos.Sub(pos)
	cross := forward.X*toPartner.Y - forward.Y*toPartner.X
	turnLeft := cross > 0

	left := geom.Left(forward)
	right := geom.Right(forward)
	back := geom.Back(forward)

	var order [4]geom.Point
	var preferred Chirality
	if turnLeft {
		order = [4]geom.Point{left, forward, right, back}
		preferred = RightHand
	} else {
		order = [4]geom.Point{right, forward, left, back}
		preferred = LeftHand
	}

	for _, delta := range order {
		candidate := pos.Add(delta)
		if isOpen(candidate, gm) {
			return candidate, chiralityFromMove(forward, delta, preferred), true
		}
	}
	return pos, preferred, false
}

// chiralityFromMove fixes chirality from the move actually realized
// rather than the pre-move turn preference: a realized Right turn
// (cross product of forward and the move is positive) fixes LeftHand, a
// realized Left turn fixes RightHand, and Forward/Back — no turn at all,
// cross product zero — falls back to the pre-move preference, since a
// straight step carries no information about which side the wall is on.
func chiralityFromMove(forward, move geom.Point, fallback Chirality) Chirality {
	cross := forward.X*move.Y - forward.Y*move.X
	switch {
	case cross > 0:
		return LeftHand
	case cross < 0:
		return RightHand
	default:
		return fallback
	}
}

func isOpen(p geom.Point, gm *cellmap.GridMap) bool {
	return gm.InBounds(p.X, p.Y) && gm.AtOrObstacle(p.X, p.Y) != cellmap.Obstacle
}
