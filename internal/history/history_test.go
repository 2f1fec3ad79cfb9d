package history

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/boundaryrobots/mapexplore/internal/geom"
	"github.com/boundaryrobots/mapexplore/internal/phase"
)

func TestRecordAppendsAndBroadcasts(t *testing.T) {
	Convey("Given a recorder with one subscriber", t, func() {
		r := NewRecorder()
		sub := r.Subscribe()

		snap := Snapshot{
			Tick: 1,
			Agents: []AgentSnapshot{
				{Pos: geom.Point{X: 1, Y: 1}, Orientation: geom.East, Phase: phase.InitialWallFind},
			},
		}
		r.Record(snap)

		Convey("It appears in Snapshots", func() {
			So(len(r.Snapshots()), ShouldEqual, 1)
			So(r.Snapshots()[0].Tick, ShouldEqual, 1)
		})

		Convey("And is delivered to the subscriber", func() {
			select {
			case got := <-sub:
				So(got.Tick, ShouldEqual, 1)
			default:
				t.Fatal("expected a snapshot on the subscriber channel")
			}
		})
	})
}

func TestRecordNeverBlocksOnAFullSubscriber(t *testing.T) {
	Convey("Given a subscriber whose buffer is already full", t, func() {
		r := NewRecorder()
		sub := r.Subscribe()
		for i := 0; i < 10; i++ {
			r.Record(Snapshot{Tick: i})
		}

		Convey("Record still appends to history without blocking", func() {
			So(len(r.Snapshots()), ShouldEqual, 10)
		})
		_ = sub
	})
}

func TestExportJSONRoundTrips(t *testing.T) {
	Convey("Given a recorder with a couple of ticks", t, func() {
		r := NewRecorder()
		r.Record(Snapshot{Tick: 0})
		r.Record(Snapshot{Tick: 1})

		data, err := r.ExportJSON()
		So(err, ShouldBeNil)

		var out []Snapshot
		err = json.Unmarshal(data, &out)
		Convey("The exported JSON decodes back to the same ticks", func() {
			So(err, ShouldBeNil)
			So(len(out), ShouldEqual, 2)
			So(out[1].Tick, ShouldEqual, 1)
		})
	})
}
