package phase

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/boundaryrobots/mapexplore/internal/analyzer"
	"github.com/boundaryrobots/mapexplore/internal/cellmap"
	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/params"
)

func openRoom(w, h int) *cellmap.GridMap {
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

func TestInitialWallFindTransitionsOnBump(t *testing.T) {
	Convey("Given a machine two cells below the north wall", t, func() {
		gm := openRoom(6, 4)
		m := New(params.Defaults())
		pos := geom.Point{X: 2, Y: 2}
		orientation := geom.South
		partner := geom.Point{X: 4, Y: 2}

		Convey("It walks straight north regardless of orientation until it bumps the wall, then hands off to scouting", func() {
			out := m.Step(Input{Pos: pos, Orientation: orientation, GridMap: gm, PartnerPos: partner})
			So(out.Transition, ShouldResemble, Stay())
			So(out.NextPos, ShouldResemble, geom.Point{X: 2, Y: 1})
			So(out.NextOrientation, ShouldEqual, geom.North)

			out = m.Step(Input{Pos: out.NextPos, Orientation: out.NextOrientation, GridMap: gm, PartnerPos: partner})
			So(out.Transition, ShouldResemble, To(BoundaryScouting))
			So(m.Phase, ShouldEqual, BoundaryScouting)
		})
	})
}

func TestBoundaryAnalysisGatesOnPartnerPhase(t *testing.T) {
	Convey("Given a machine sitting in BoundaryAnalysis with rotation total set", t, func() {
		gm := openRoom(6, 4)
		m := &Machine{Phase: BoundaryAnalysis, rotationTotal: -4}
		pos := geom.Point{X: 2, Y: 2}

		Convey("It waits if the partner has not yet arrived", func() {
			out := m.Step(Input{Pos: pos, Orientation: geom.East, GridMap: gm, PartnerPhase: InitialWallFind})
			So(out.Transition, ShouldResemble, Stay())
			So(m.Phase, ShouldEqual, BoundaryAnalysis)
		})

		Convey("It classifies and transitions once both agree", func() {
			out := m.Step(Input{Pos: pos, Orientation: geom.East, GridMap: gm, PartnerPhase: BoundaryAnalysis, PartnerRotation: 0})
			So(out.Classification, ShouldEqual, analyzer.ExteriorWall)
			So(m.Phase, ShouldEqual, InteriorSweep)
		})
	})
}

func TestBoundaryAnalysisInconclusiveResumesScouting(t *testing.T) {
	Convey("Given mismatched rotation totals", t, func() {
		gm := openRoom(6, 4)
		m := &Machine{Phase: BoundaryAnalysis, rotationTotal: 1}
		out := m.Step(Input{Pos: geom.Point{X: 2, Y: 2}, Orientation: geom.East, GridMap: gm, PartnerPhase: BoundaryAnalysis, PartnerRotation: 0})
		Convey("It resumes BoundaryScouting instead of classifying a wall or island", func() {
			So(out.Classification, ShouldEqual, analyzer.Inconclusive)
			So(m.Phase, ShouldEqual, BoundaryScouting)
		})
	})
}
