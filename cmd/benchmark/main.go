package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/okian/squadmaker/internal/benchmark"
	"github.com/okian/squadmaker/internal/config"
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("benchmark: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	var (
		sizes        = flag.String("sizes", joinInts(benchmark.DefaultSizes), "Comma separated data set sizes")
		workers      = flag.Int("workers", cfg.WorkerCount, "Number of concurrent workers")
		queueSize    = flag.Int("queue", cfg.QueueSize, "Experiment queue capacity")
		seed         = flag.Int64("seed", cfg.RandomSeed, "Random seed (0 = time based)")
		distribution = flag.String("distribution", cfg.RatingDistribution, "Rating distribution: uniform or tiered")
		minRating    = flag.Int("min", cfg.MinRating, "Lowest generated rating")
		maxRating    = flag.Int("max", cfg.MaxRating, "Highest generated rating")
		verbose      = flag.Bool("verbose", false, "Print every experiment")
	)
	flag.Parse()

	if err := logger.Init(logger.WithFile(cfg.LogFile)); err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	dataSizes, err := parseInts(*sizes)
	if err != nil {
		return err
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // not security sensitive

	sets, err := benchmark.DataSets(rng, dataSizes, *minRating, *maxRating, *distribution)
	if err != nil {
		return err
	}

	runner := benchmark.NewRunner(
		benchmark.WithBaseline(balance.NewRandom(rand.New(rand.NewSource(*seed+1)))), //nolint:gosec // not security sensitive
		benchmark.WithWorkers(*workers),
		benchmark.WithQueueSize(*queueSize),
		benchmark.WithLogger(logger.Named("benchmark")),
	)
	report, err := runner.Run(ctx, benchmark.Experiments(sets))
	if err != nil {
		return err
	}

	if *verbose {
		for _, o := range report.Outcomes {
			fmt.Printf("players=%d squads=%d %s=%f %s=%f\n",
				o.PlayerCount, o.NumSquads, report.Baseline, o.BaselineVariance, report.Heuristic, o.HeuristicVariance)
		}
	}
	fmt.Printf("Ran %d experiments in %f seconds\n", report.Experiments, report.Duration.Seconds())
	fmt.Printf("Average benchmark variance: %f\n", report.BaselineVariance)
	fmt.Printf("Average variance for '%s' algorithm: %f\n", report.Heuristic, report.HeuristicVariance)
	return nil
}

func parseInts(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size '%s': %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
