package visualize

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/boundaryrobots/mapexplore/internal/history"
	"github.com/boundaryrobots/mapexplore/internal/metrics"
)

func TestHandleMetricsReportsTickRate(t *testing.T) {
	Convey("Given a server with an observed tick rate", t, func() {
		tr := metrics.NewTickRate()
		tr.Observe(0.25)
		s := NewServer(":0", history.NewRecorder(), tr)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		Convey("It returns the gauge's current value as JSON", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			var payload metricsPayload
			err := json.Unmarshal(rec.Body.Bytes(), &payload)
			So(err, ShouldBeNil)
			So(payload.TicksPerSecond, ShouldEqual, 4.0)
			So(payload.TickCount, ShouldEqual, uint64(1))
		})
	})
}
