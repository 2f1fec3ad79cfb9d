package metrics

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGaugeSetAndRead(t *testing.T) {
	Convey("Given a fresh gauge", t, func() {
		g := NewGauge(1.5)
		So(g.Read(), ShouldEqual, 1.5)

		Convey("Set overwrites the value", func() {
			g.Set(2.25)
			So(g.Read(), ShouldEqual, 2.25)
		})

		Convey("CompareAndSwap only succeeds against the current value", func() {
			So(g.CompareAndSwap(1.5, 9), ShouldBeTrue)
			So(g.Read(), ShouldEqual, 9.0)
			So(g.CompareAndSwap(1.5, 3), ShouldBeFalse)
			So(g.Read(), ShouldEqual, 9.0)
		})
	})
}

func TestTickRateObserve(t *testing.T) {
	Convey("Given a fresh tick rate tracker", t, func() {
		tr := NewTickRate()
		So(tr.Count(), ShouldEqual, uint64(0))

		Convey("Observing a half-second tick yields a rate of 2/s", func() {
			tr.Observe(0.5)
			So(tr.Rate(), ShouldEqual, 2.0)
			So(tr.Count(), ShouldEqual, uint64(1))
		})

		Convey("A non-positive elapsed time resets the rate to zero rather than dividing by it", func() {
			tr.Observe(0)
			So(tr.Rate(), ShouldEqual, 0.0)
		})
	})
}
