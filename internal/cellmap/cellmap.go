// Package cellmap holds the grid representation shared by the ground-truth
// world and every agent's private map.
package cellmap

import (
	"encoding/json"
	"fmt"
)

// Cell is the state of a single grid position. The zero value is Unexplored.
type Cell uint8

const (
	Unexplored Cell = iota
	Empty
	Obstacle
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Obstacle:
		return "Obstacle"
	default:
		return "Unexplored"
	}
}

// GridMap is a row-major rectangular array of Cells.
type GridMap struct {
	Width, Height int
	cells         []Cell
}

// New returns a GridMap of the given dimensions with every cell Unexplored.
func New(width, height int) *GridMap {
	return &GridMap{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// InBounds reports whether (x,y) is a valid index into the map.
func (gm *GridMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < gm.Width && y < gm.Height
}

func (gm *GridMap) index(x, y int) int {
	return y*gm.Width + x
}

// At returns the cell at (x,y). Out-of-bounds reads are treated as
// Obstacle by all callers in this module; At itself panics, since a
// caller crossing the bounds check is a programmer error, not a runtime
// condition the grid can recover from.
func (gm *GridMap) At(x, y int) Cell {
	if !gm.InBounds(x, y) {
		panic(fmt.Sprintf("cellmap: At(%d,%d) out of bounds for %dx%d map", x, y, gm.Width, gm.Height))
	}
	return gm.cells[gm.index(x, y)]
}

// AtOrObstacle returns At(x,y), or Obstacle if (x,y) is out of bounds.
// Sensing and wall-following both want this out-of-bounds-as-wall rule
// instead of a bounds check at every call site.
func (gm *GridMap) AtOrObstacle(x, y int) Cell {
	if !gm.InBounds(x, y) {
		return Obstacle
	}
	return gm.cells[gm.index(x, y)]
}

// Set writes the cell at (x,y). Cells are monotone by convention of the
// callers (sensing and merge never downgrade Empty/Obstacle back to
// Unexplored); Set itself does not enforce that, it is a plain write.
func (gm *GridMap) Set(x, y int, c Cell) {
	if !gm.InBounds(x, y) {
		panic(fmt.Sprintf("cellmap: Set(%d,%d) out of bounds for %dx%d map", x, y, gm.Width, gm.Height))
	}
	gm.cells[gm.index(x, y)] = c
}

// MergeFrom copies every non-Unexplored cell of other into gm. Merge only
// ever increases knowledge: a cell gm already knows is never reset to
// Unexplored, and two maps that agree on their known cells merge
// commutatively.
func (gm *GridMap) MergeFrom(other *GridMap) {
	if other == nil || len(other.cells) != len(gm.cells) {
		return
	}
	for i, c := range other.cells {
		if c != Unexplored {
			gm.cells[i] = c
		}
	}
}

// Clone returns a deep copy, used for per-agent private maps and for
// history snapshots.
func (gm *GridMap) Clone() *GridMap {
	cp := &GridMap{
		Width:  gm.Width,
		Height: gm.Height,
		cells:  make([]Cell, len(gm.cells)),
	}
	copy(cp.cells, gm.cells)
	return cp
}

// CountKnown returns the number of cells that are Empty or Obstacle.
func (gm *GridMap) CountKnown() int {
	n := 0
	for _, c := range gm.cells {
		if c != Unexplored {
			n++
		}
	}
	return n
}

// CountEmpty returns the number of cells marked Empty.
func (gm *GridMap) CountEmpty() int {
	n := 0
	for _, c := range gm.cells {
		if c == Empty {
			n++
		}
	}
	return n
}

// gridMapWire is the JSON wire shape for a GridMap: cells is exported
// nowhere else, so live-feed consumers need this to see anything beyond
// the dimensions.
type gridMapWire struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

// MarshalJSON encodes the full cell grid, row-major, alongside its
// dimensions.
func (gm *GridMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridMapWire{Width: gm.Width, Height: gm.Height, Cells: gm.cells})
}

// UnmarshalJSON is the inverse of MarshalJSON, so exported history round-trips.
func (gm *GridMap) UnmarshalJSON(data []byte) error {
	var wire gridMapWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	gm.Width = wire.Width
	gm.Height = wire.Height
	gm.cells = wire.Cells
	return nil
}
