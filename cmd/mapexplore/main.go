/*
Mapexplore runs the two-agent cooperative boundary-tracing simulation
against an ASCII map file and prints the outcome: how many ticks it
took, what the boundary analyzer concluded, and how many cells of the
map the first agent's private map (merged with its partner's at each
exchange) came to know. Pass -serve to also host a websocket live
feed of the run's recorded history while it plays out.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/boundaryrobots/mapexplore/internal/analyzer"
	"github.com/boundaryrobots/mapexplore/internal/config"
	"github.com/boundaryrobots/mapexplore/internal/maploader"
	"github.com/boundaryrobots/mapexplore/internal/params"
	"github.com/boundaryrobots/mapexplore/internal/placement"
	"github.com/boundaryrobots/mapexplore/internal/simulation"
	"github.com/boundaryrobots/mapexplore/internal/visualize"
)

const defaultSeed = 42

var (
	configPath *string
	serve      *bool
	tickCap    *int
	serveAddr  *string
)

// TODO: per 12-factor rules these would come from env/flags uniformly;
// KISS for now, matching how the rest of this codebase reads config.
func init() {
	configPath = flag.String("config", "", "optional YAML config overriding run parameters")
	serve = flag.Bool("serve", false, "host a websocket live feed of the run")
	tickCap = flag.Int("tickcap", 0, "override the tick cap (0 = use config/default)")
	serveAddr = flag.String("addr", "", "override the live-feed bind address")
}

func runApp() error {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		return fmt.Errorf("usage: %s <map_file> [seed]", os.Args[0])
	}
	mapFile := args[0]

	seed := int64(defaultSeed)
	if len(args) >= 2 {
		if parsed, err := strconv.ParseInt(args[1], 10, 64); err == nil {
			seed = parsed
		}
	}

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.FromYaml(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if *tickCap > 0 {
		cfg.TickCap = *tickCap
	}
	if *serveAddr != "" {
		cfg.ServeAddr = *serveAddr
	}
	if *serve {
		cfg.Serve = true
	}

	world, err := maploader.Load(mapFile)
	if err != nil {
		return fmt.Errorf("loading map: %w", err)
	}

	start0, start1, err := placement.ChooseStartPositions(world, seed)
	if err != nil {
		return fmt.Errorf("placing agents: %w", err)
	}

	runParams := params.Params{
		CommunicationRange: cfg.CommunicationRange,
		InitialScoutDepth:  cfg.InitialScoutDepth,
	}
	mgr := simulation.NewManager(world, start0, start1, cfg.TickCap, runParams)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.Serve {
		srv := visualize.NewServer(cfg.ServeAddr, mgr.Recorder, mgr.TickRate)
		group.Go(func() error {
			return srv.Serve(groupCtx)
		})
		fmt.Printf("live feed listening on %s (/ws, /metrics)\n", cfg.ServeAddr)
	}

	group.Go(func() error {
		defer cancel()
		ticks := mgr.Run()
		report(ticks, mgr)
		return nil
	})

	return group.Wait()
}

func report(ticks int, mgr *simulation.Manager) {
	fmt.Printf("ran %d ticks\n", ticks)
	if len(mgr.Classifications) == 0 {
		fmt.Println("boundary analysis: never reached a decisive classification")
	} else {
		verdict := mgr.Classifications[len(mgr.Classifications)-1]
		fmt.Printf("boundary analysis: %s\n", classificationLabel(verdict))
	}
	known := mgr.Agents[0].Map.CountKnown()
	total := mgr.World.Width * mgr.World.Height
	fmt.Printf("coverage: %d/%d cells known\n", known, total)
}

func classificationLabel(c analyzer.Classification) string {
	return c.String()
}

func main() {
	if err := runApp(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
