// Package rotation accumulates the turning a scout leg performs, the raw
// signal the boundary analyzer classifies on.
package rotation

import "github.com/boundaryrobots/mapexplore/internal/geom"

// Tracker accumulates signed 90-degree rotation steps across a leg.
type Tracker struct {
	total int
}

// Add folds in the rotation between two successive orientations.
func (t *Tracker) Add(theta0, theta1 float64) {
	t.total += geom.RotationSteps(theta0, theta1)
}

// Reset zeroes the running total. Called after the first outbound step
// of each leg, so the total measures turning along the wall rather than
// the initial snap to it.
func (t *Tracker) Reset() {
	t.total = 0
}

// Total returns the accumulated signed step count.
func (t *Tracker) Total() int {
	return t.total
}
