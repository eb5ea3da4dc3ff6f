// Command simulate runs a scenario headless in one or more identical worlds,
// checks that they stay bit-for-bit in step, and can stream snapshots of every
// world to websocket viewers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/zeuphys/internal/core/observability/log"
	"github.com/zeusync/zeuphys/internal/core/scenario"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
	"github.com/zeusync/zeuphys/internal/injector"
	"github.com/zeusync/zeuphys/internal/viewer"
)

var ErrDiverged = errors.New("worlds diverged")

type options struct {
	scenario string
	frames   int
	fps      float64
	worlds   int
	parallel bool
	serve    string
	level    string
}

func main() {
	var opts options
	flag.StringVar(&opts.scenario, "scenario", "", "path to the scenario YAML file")
	flag.IntVar(&opts.frames, "frames", 600, "number of frames to simulate")
	flag.Float64Var(&opts.fps, "fps", 60, "frames per second")
	flag.IntVar(&opts.worlds, "worlds", 2, "number of identical worlds to compare")
	flag.BoolVar(&opts.parallel, "parallel", false, "run worlds concurrently instead of one after another")
	flag.StringVar(&opts.serve, "serve", "", "address to stream snapshots on, e.g. :8080; frames are paced in real time")
	flag.StringVar(&opts.level, "log", "info", "log level")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func (o options) validate() error {
	switch {
	case o.scenario == "":
		return errors.New("-scenario is required")
	case o.frames < 0:
		return fmt.Errorf("-frames must not be negative, got %d", o.frames)
	case !(o.fps > 0):
		return fmt.Errorf("-fps must be positive, got %g", o.fps)
	case o.worlds < 1:
		return fmt.Errorf("-worlds must be at least 1, got %d", o.worlds)
	}
	return nil
}

// concurrency is how many worlds simulate at once. Served worlds are paced in
// real time and run together; otherwise they run one at a time unless
// -parallel is set.
func (o options) concurrency() int {
	if o.parallel || o.serve != "" {
		return o.worlds
	}
	return 1
}

func run(ctx context.Context, opts options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	level, err := log.ParseLevel(opts.level)
	if err != nil {
		return err
	}
	rt, err := injector.InitializeRuntime(level)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Logger.Sync() }()
	defer func() { _ = rt.Feed.Close() }()

	file, err := loadScenario(opts.scenario)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	var srv *http.Server
	if opts.serve != "" {
		srv = &http.Server{Addr: opts.serve, Handler: viewerMux(rt.Feed)}
		g.Go(func() error {
			rt.Logger.Info("serving snapshots", log.String("addr", opts.serve))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	started := time.Now()
	digests := make([]uint64, opts.worlds)
	var sims errgroup.Group
	sims.SetLimit(opts.concurrency())
	for i := range opts.worlds {
		sims.Go(func() error {
			d, err := simulate(ctx, file, opts, i, rt)
			digests[i] = d
			return err
		})
	}
	simErr := sims.Wait()

	if srv != nil {
		if simErr == nil {
			rt.Logger.Info("simulation finished, serving until interrupted")
			<-ctx.Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if err := g.Wait(); err != nil {
			return err
		}
	}
	if simErr != nil {
		return simErr
	}

	for i := 1; i < len(digests); i++ {
		if digests[i] != digests[0] {
			rt.Logger.Error("worlds diverged",
				log.Int("world", i),
				log.String("digest", fmt.Sprintf("%016x", digests[i])),
				log.String("reference", fmt.Sprintf("%016x", digests[0])))
			return fmt.Errorf("%w: world %d", ErrDiverged, i)
		}
	}
	rt.Logger.Info("simulation complete",
		log.Int("worlds", opts.worlds),
		log.Int("frames", opts.frames),
		log.String("digest", fmt.Sprintf("%016x", digests[0])),
		log.Duration("elapsed", time.Since(started)))
	return nil
}

func loadScenario(path string) (*scenario.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := scenario.Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err = f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func viewerMux(feed *viewer.Feed) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", feed.Handler())
	return mux
}

func roomName(i int) string { return fmt.Sprintf("world-%d", i) }

// simulate runs one world to completion and returns its final digest.
func simulate(ctx context.Context, file *scenario.File, opts options, index int, rt *injector.Runtime) (uint64, error) {
	logger := rt.Logger.With(log.Int("world", index))
	w, _, err := file.Instantiate(physics.WithLogger(logger))
	if err != nil {
		return 0, err
	}

	dt := 1 / opts.fps
	var tick <-chan time.Time
	if opts.serve != "" {
		ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	for frame := range opts.frames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-tick:
			}
		} else if err = ctx.Err(); err != nil {
			return 0, err
		}

		if _, err = w.Update(dt); err != nil {
			return 0, fmt.Errorf("world %d frame %d: %w", index, frame, err)
		}
		if opts.serve != "" {
			if err = rt.Feed.Broadcast(roomName(index), w.Snapshot()); err != nil {
				return 0, err
			}
		}
	}

	logger.Debug("world done", log.Uint64("steps", w.StepCount()), log.Int("entities", w.EntityCount()))
	return w.Digest(), nil
}
