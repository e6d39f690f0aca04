// Package main is the grover sweep CLI: it measures search accuracy over a
// range of register sizes, writes the JSON report and prints a dot plot.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/theapemachine/grover"
	"go.uber.org/zap"
)

const plotWidth = 60

// NewLogger builds the CLI's logger: JSON at info level, or console output
// with per-point sweep lines when debug is set.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type options struct {
	configPath string
	debug      bool
	plot       bool
	metrics    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "grover: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg := &grover.FileConfig{
		Pool:  *grover.NewConfig(),
		Sweep: *grover.NewSweepConfig(),
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	logger, err := NewLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	var registry *prometheus.Registry
	if opts.metrics {
		registry = prometheus.NewRegistry()
		cfg.Pool.Registerer = registry
	}

	pool, err := grover.NewPool(&cfg.Pool)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting the simulation",
		zap.String("config_path", opts.configPath),
		zap.Int("min_qubits", cfg.Sweep.MinQubits),
		zap.Int("max_qubits", cfg.Sweep.MaxQubits),
		zap.Int("runs", cfg.Sweep.Runs),
		zap.Int("measure_count", cfg.Sweep.MeasureCount),
	)

	points, err := grover.Sweep(ctx, pool, &cfg.Sweep, func(p grover.Point) {
		fmt.Fprintf(stdout, "Qubits: %d, Failures: %d\n", p.Qubits, p.Failures)
		logger.Debug("sweep point",
			zap.Int("qubits", p.Qubits),
			zap.Int("iterations", p.Iterations),
			zap.Int64("failures", p.Failures),
			zap.Float64("accuracy", p.Accuracy),
			zap.Duration("elapsed", p.Elapsed),
		)
	})
	if err != nil {
		logger.Error("sweep aborted", zap.Error(err), zap.Int("completed_points", len(points)))
		return err
	}

	if cfg.Sweep.Output != "" {
		if err := grover.WriteReport(cfg.Sweep.Output, grover.NewReport(points)); err != nil {
			return err
		}
		logger.Info("report saved", zap.String("path", cfg.Sweep.Output))
	}

	if opts.plot {
		if err := grover.PlotAccuracy(stdout, points, plotWidth); err != nil {
			return err
		}
	}

	alloc, sys := pool.Governor().Usage()
	logger.Info("pool metrics",
		zap.Any("metrics", pool.Metrics().ExportMetrics()),
		zap.Uint64("heap_alloc", alloc),
		zap.Uint64("heap_sys", sys),
		zap.Uint64("memory_limit", pool.Governor().Limit()),
	)

	if registry != nil {
		return dumpMetrics(stdout, registry)
	}

	return nil
}

/*
parseFlags loads the config file first when -config is given, then applies
only the flags that were set explicitly on top of it.
*/
func parseFlags(args []string, cfg *grover.FileConfig) (*options, error) {
	fs := flag.NewFlagSet("grover", flag.ContinueOnError)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "YAML config file path")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.plot, "plot", true, "print the accuracy dot plot")
	fs.BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics after the sweep")

	minQubits := fs.Int("min", cfg.Sweep.MinQubits, "smallest register size")
	maxQubits := fs.Int("max", cfg.Sweep.MaxQubits, "largest register size")
	runs := fs.Int("runs", cfg.Sweep.Runs, "trials per register size")
	measure := fs.Int("measure", cfg.Sweep.MeasureCount, "measurements per trial")
	iterations := fs.Int("iterations", cfg.Sweep.Iterations, "amplification rounds, negative for the optimum")
	target := fs.String("target", cfg.Sweep.Target, "target bit pattern, repeated to the register size")
	workers := fs.Int("workers", cfg.Pool.Workers, "worker pool size")
	seed := fs.Uint64("seed", cfg.Pool.Seed, "base seed, 0 for a random one")
	out := fs.String("out", cfg.Sweep.Output, "report path, empty to skip")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.configPath != "" {
		loaded, err := grover.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		*cfg = *loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min":
			cfg.Sweep.MinQubits = *minQubits
		case "max":
			cfg.Sweep.MaxQubits = *maxQubits
		case "runs":
			cfg.Sweep.Runs = *runs
		case "measure":
			cfg.Sweep.MeasureCount = *measure
		case "iterations":
			cfg.Sweep.Iterations = *iterations
		case "target":
			cfg.Sweep.Target = *target
		case "workers":
			cfg.Pool.Workers = *workers
		case "seed":
			cfg.Pool.Seed = *seed
		case "out":
			cfg.Sweep.Output = *out
		}
	})

	if opts.debug {
		cfg.Pool.Verbose = true
	}

	if err := cfg.Sweep.Validate(); err != nil {
		return nil, err
	}

	return opts, nil
}

func dumpMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}

	return nil
}
