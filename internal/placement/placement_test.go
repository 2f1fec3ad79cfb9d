package placement

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/boundaryrobots/mapexplore/internal/cellmap"
)

func box(w, h int) *cellmap.GridMap {
	gm := cellmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				gm.Set(x, y, cellmap.Obstacle)
			} else {
				gm.Set(x, y, cellmap.Empty)
			}
		}
	}
	return gm
}

func TestChooseStartPositionsReturnsAdjacentEmptyCells(t *testing.T) {
	Convey("Given an open 6x4 box", t, func() {
		gm := box(6, 4)
		p, q, err := ChooseStartPositions(gm, 42)

		Convey("It returns two distinct, adjacent, Empty cells", func() {
			So(err, ShouldBeNil)
			So(gm.At(p.X, p.Y), ShouldEqual, cellmap.Empty)
			So(gm.At(q.X, q.Y), ShouldEqual, cellmap.Empty)
			So(p.ManhattanDistance(q), ShouldEqual, 1)
		})
	})
}

func TestChooseStartPositionsIsDeterministicForASeed(t *testing.T) {
	Convey("Given the same map and seed twice", t, func() {
		gm := box(8, 5)
		p1, q1, err1 := ChooseStartPositions(gm, 7)
		p2, q2, err2 := ChooseStartPositions(gm, 7)

		Convey("The chosen pair is identical", func() {
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(p1, ShouldResemble, p2)
			So(q1, ShouldResemble, q2)
		})
	})
}

func TestChooseStartPositionsErrorsWithNoRoom(t *testing.T) {
	Convey("Given a map with no Empty cells", t, func() {
		gm := cellmap.New(3, 3)
		_, _, err := ChooseStartPositions(gm, 1)
		Convey("It reports ErrNoValidStart", func() {
			So(err, ShouldEqual, ErrNoValidStart)
		})
	})
}
