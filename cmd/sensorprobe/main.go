package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/sensor"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics/world"
	"github.com/zeusync/sweepsensor/internal/injector"
	"github.com/zeusync/sweepsensor/internal/server"
)

type options struct {
	scene    string
	sensors  string
	ticks    int
	interval time.Duration
	addr     string
	token    string
	level    string
	format   string
	parallel int
	asJSON   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "", "scene file (.yaml, .yml or .json)")
	flag.StringVar(&opts.sensors, "sensors", "", "sensor file (.yaml, .yml or .json)")
	flag.IntVar(&opts.ticks, "ticks", 1, "number of scans; 0 scans until interrupted")
	flag.DurationVar(&opts.interval, "interval", 100*time.Millisecond, "time between scans")
	flag.StringVar(&opts.addr, "addr", "", "serve the debug stream on this address")
	flag.StringVar(&opts.token, "token", "", "token required by the debug stream")
	flag.StringVar(&opts.level, "log-level", "info", "debug, info, warn, error or silent")
	flag.StringVar(&opts.format, "log-format", "json", "json or console")
	flag.IntVar(&opts.parallel, "parallel", 0, "sensors scanned at once; 0 is unbounded")
	flag.BoolVar(&opts.asJSON, "json", false, "print the final results as JSON")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "sensorprobe:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.scene == "" || opts.sensors == "" {
		return errors.New("-scene and -sensors are required")
	}
	if opts.ticks < 0 {
		return fmt.Errorf("-ticks %d must not be negative", opts.ticks)
	}

	level, err := log.ParseLevel(opts.level)
	if err != nil {
		return err
	}

	scene, err := loadFile(opts.scene, world.LoadSceneYAML, world.LoadSceneJSON)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	file, err := loadFile(opts.sensors, sensor.LoadYAML, sensor.LoadJSON)
	if err != nil {
		return fmt.Errorf("load sensors: %w", err)
	}

	logging := log.Options{Level: level, Format: log.Format(opts.format)}
	probe, err := injector.InitializeProbe(scene, file, logging, injector.Parallelism(opts.parallel))
	if err != nil {
		return err
	}
	logger := probe.Logger
	defer func() { _ = logger.Sync() }()

	logger.Info("Probe loaded",
		log.Int("colliders", probe.World.Len()),
		log.Int("sensors", probe.Manager.Len()))

	var srv *server.Server
	if opts.addr != "" {
		cfg := server.DefaultServerConfig()
		cfg.ListenAddr = opts.addr
		cfg.Token = opts.token
		srv = server.NewServer(cfg, probe.Manager, logger)
		if err = srv.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Error("Failed to stop server", log.Error(err))
			}
		}()
	}

	err = tick(ctx, probe.Manager, srv, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return report(out, probe.Manager.Snapshot(), opts.asJSON)
}

// tick scans every sensor opts.ticks times, or until ctx ends when ticks is 0.
func tick(ctx context.Context, m *sensor.Manager, srv *server.Server, opts options) error {
	ticker := time.NewTicker(max(opts.interval, time.Millisecond))
	defer ticker.Stop()

	for n := 0; opts.ticks == 0 || n < opts.ticks; n++ {
		if n > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}

		if err := m.ScanAll(ctx); err != nil {
			return err
		}
		if srv != nil {
			if _, err := srv.Broadcast(); err != nil {
				return err
			}
		}
	}
	return nil
}

func loadFile[T any](path string, fromYAML, fromJSON func(io.Reader) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return fromYAML(f)
	case ".json":
		return fromJSON(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func report(out io.Writer, entries []sensor.Entry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SENSOR\tKIND\tHIT\tDISTANCE\tPERCENT\tCOLLIDER")
	for _, e := range entries {
		r := e.Result
		distance, collider := "-", "-"
		if d, err := r.DistanceFromStart(); err == nil {
			distance = fmt.Sprintf("%.3f", d)
			if r.Info.Collider != "" {
				collider = r.Info.Collider
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%.3f\t%s\n", e.Name, r.Kind, r.Hit, distance, r.Percent(), collider)
	}
	return tw.Flush()
}
