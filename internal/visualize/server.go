package visualize

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/boundaryrobots/mapexplore/internal/history"
	"github.com/boundaryrobots/mapexplore/internal/metrics"
)

// Server exposes the simulation's recorded history over a websocket feed
// and its tick rate over a small JSON polling endpoint. It holds no
// reference back into the simulation manager or any agent; it only
// reads from the history Recorder and the metrics Gauge it is given,
// both of which are safe for concurrent read access.
type Server struct {
	router   *mux.Router
	recorder *history.Recorder
	tickRate *metrics.TickRate
	httpSrv  *http.Server
}

// NewServer builds a Server routed for /ws (live snapshot feed) and
// /metrics (tick-rate poll), bound to addr.
func NewServer(addr string, recorder *history.Recorder, tickRate *metrics.TickRate) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		recorder: recorder,
		tickRate: tickRate,
	}
	s.router.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	s.httpSrv = &http.Server{Addr: addr, Handler: s.router}
	return s
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	updates := s.recorder.Subscribe()
	cli, err := newClient[history.Snapshot](updates, w, r)
	if err != nil {
		return
	}
	_ = cli.sync()
}

type metricsPayload struct {
	TicksPerSecond float64 `json:"ticksPerSecond"`
	TickCount      uint64  `json:"tickCount"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(metricsPayload{
		TicksPerSecond: s.tickRate.Rate(),
		TickCount:      s.tickRate.Count(),
	})
}

// Serve runs the HTTP server until ctx is cancelled, at which point it
// shuts down gracefully. It returns nil on a clean shutdown and any
// other error from ListenAndServe verbatim.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeGracePeriod)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
