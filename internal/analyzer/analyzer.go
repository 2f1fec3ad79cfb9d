// Package analyzer classifies a just-finished boundary-scouting leg as
// tracing an interior island or the room's exterior wall, from the two
// agents' accumulated rotation totals alone.
package analyzer

import "github.com/boundaryrobots/mapexplore/internal/params"

// Classification is the analyzer's verdict.
type Classification int

const (
	// Inconclusive means keep scouting: the rotation totals don't yet
	// match the expected ±4 pattern.
	Inconclusive Classification = iota
	// ExteriorWall means the traced loop encloses the reachable region.
	ExteriorWall
	// Island means the traced loop is an interior obstacle.
	Island
)

func (c Classification) String() string {
	switch c {
	case ExteriorWall:
		return "ExteriorWall"
	case Island:
		return "Island"
	default:
		return "Inconclusive"
	}
}

// Classify applies the ±4 rotation-difference rule: the two agents trace
// in opposite rotational senses, so an enclosing exterior wall yields
// r0-r1 == -ExpectedRotationDifference and an interior island yields
// r0-r1 == +ExpectedRotationDifference. Any other difference means the
// legs haven't yet completed a coherent loop together.
func Classify(r0, r1 int) Classification {
	diff := r0 - r1
	switch diff {
	case -params.ExpectedRotationDifference:
		return ExteriorWall
	case params.ExpectedRotationDifference:
		return Island
	default:
		return Inconclusive
	}
}
