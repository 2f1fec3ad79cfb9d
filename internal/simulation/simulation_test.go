package simulation

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/maploader"
	"github.com/boundaryrobots/mapexplore/internal/params"
)

func TestRunTerminatesWithinTickCapOnEmptyBox(t *testing.T) {
	Convey("Given the empty 6x4 box with agents adjacent near a corner", t, func() {
		gm, err := maploader.Parse(strings.NewReader("######\n#....#\n#....#\n######\n"))
		So(err, ShouldBeNil)

		m := NewManager(gm, geom.Point{X: 1, Y: 1}, geom.Point{X: 2, Y: 1}, 200, params.Defaults())
		ticks := m.Run()

		Convey("The run halts at or before the tick cap", func() {
			So(ticks, ShouldBeLessThanOrEqualTo, 200)
			So(m.Done(), ShouldBeTrue)
		})

		Convey("Every recorded position stays in bounds with a cardinal orientation", func() {
			cardinals := map[float64]bool{geom.East: true, geom.South: true, geom.West: true, geom.North: true}
			for _, snap := range m.Recorder.Snapshots() {
				for _, as := range snap.Agents {
					So(as.Pos.X, ShouldBeBetweenOrEqual, 0, gm.Width-1)
					So(as.Pos.Y, ShouldBeBetweenOrEqual, 0, gm.Height-1)
					So(cardinals[as.Orientation], ShouldBeTrue)
				}
			}
		})

		Convey("Known-cell counts never decrease tick over tick", func() {
			snaps := m.Recorder.Snapshots()
			for i := 1; i < len(snaps); i++ {
				So(snaps[i].KnownCells, ShouldBeGreaterThanOrEqualTo, snaps[i-1].KnownCells)
			}
		})
	})
}

func TestRunTerminatesWithinTickCapOnCorridor(t *testing.T) {
	Convey("Given the narrow 12x4 corridor with agents starting in the middle", t, func() {
		gm, err := maploader.Parse(strings.NewReader("############\n#..........#\n#..........#\n############\n"))
		So(err, ShouldBeNil)

		m := NewManager(gm, geom.Point{X: 5, Y: 1}, geom.Point{X: 6, Y: 1}, 300, params.Defaults())
		m.Run()

		Convey("Merged knowledge covers at least half the empty cells", func() {
			totalEmpty := gm.CountEmpty()
			knownEmpty := m.Agents[0].Map.CountEmpty()
			So(float64(knownEmpty), ShouldBeGreaterThanOrEqualTo, float64(totalEmpty)*0.5)
		})
	})
}
