package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/boundaryrobots/mapexplore/internal/params"
)

func TestDefaults(t *testing.T) {
	Convey("Defaults mirrors internal/params", t, func() {
		cfg := Defaults()
		So(cfg.CommunicationRange, ShouldEqual, params.CommunicationRange)
		So(cfg.InitialScoutDepth, ShouldEqual, params.InitialScoutDepth)
		So(cfg.TickCap, ShouldEqual, params.DefaultTickCap)
	})
}

func TestApplyDefaultsFillsZeroFields(t *testing.T) {
	Convey("Given a partially populated config", t, func() {
		cfg := &RunConfig{TickCap: 1000}
		applyDefaults(cfg)

		Convey("Only the zero fields are filled from the defaults", func() {
			So(cfg.TickCap, ShouldEqual, 1000)
			So(cfg.CommunicationRange, ShouldEqual, params.CommunicationRange)
			So(cfg.InitialScoutDepth, ShouldEqual, params.InitialScoutDepth)
			So(cfg.ServeAddr, ShouldEqual, ":8080")
		})
	})
}
