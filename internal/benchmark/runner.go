// Package benchmark compares balancing strategies by the variance of squad
// skill averages over many generated data sets.
package benchmark

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/squadmaker/internal/adapters/mq/queue"
	"github.com/okian/squadmaker/internal/adapters/mq/worker"
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/pkg/logger"
	"github.com/okian/squadmaker/pkg/metrics"
)

// Report summarises a benchmark run.
type Report struct {
	Experiments       int
	Failed            int
	Duration          time.Duration
	Baseline          string
	Heuristic         string
	BaselineVariance  float64
	HeuristicVariance float64
	Outcomes          []Outcome
}

// Runner executes experiments concurrently on a worker pool.
type Runner struct {
	baseline  balance.Strategy
	heuristic balance.Strategy
	workers   int
	queueSize int
	logger    logger.Logger
}

// NewRunner creates a runner comparing the random baseline against the
// minimize-delta heuristic.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		heuristic: balance.NewMinimizeDelta(),
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.baseline == nil {
		r.baseline = balance.NewRandom(nil)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("benchmark")
	}
	return r
}

// Run executes every experiment and averages the variances. Experiments
// that fail are logged and left out of the averages.
func (r *Runner) Run(ctx context.Context, experiments []Experiment) (Report, error) {
	if len(experiments) == 0 {
		return Report{}, ErrNoExperiments
	}

	var (
		mu       sync.Mutex
		outcomes = make([]Outcome, 0, len(experiments))
	)
	handler := worker.HandlerFunc[Experiment](func(_ context.Context, e Experiment) error {
		out, err := e.run(r.baseline, r.heuristic)
		if err != nil {
			return fmt.Errorf("experiment %d (%d players, %d squads): %w", e.ID, len(e.Players), e.NumSquads, err)
		}
		metrics.RecordBenchmarkExperiment(r.baseline.Name())
		metrics.RecordBenchmarkExperiment(r.heuristic.Name())
		mu.Lock()
		outcomes = append(outcomes, out)
		mu.Unlock()
		return nil
	})

	q := queue.NewInMemoryQueue[Experiment](queue.WithCapacity(r.queueSize))
	pool := worker.NewPool[Experiment](r.workers, q, handler, worker.WithName("benchmark"), worker.WithLogger(r.logger))

	start := time.Now()
	pool.Start(ctx)
	for _, e := range experiments {
		if err := q.EnqueueWait(ctx, e); err != nil {
			_ = pool.Shutdown(context.WithoutCancel(ctx))
			return Report{}, err
		}
	}
	if err := q.Close(); err != nil {
		return Report{}, err
	}
	if err := pool.Wait(ctx); err != nil {
		return Report{}, err
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].ExperimentID < outcomes[j].ExperimentID })
	report := Report{
		Experiments: len(outcomes),
		Failed:      int(pool.Failed()),
		Duration:    time.Since(start),
		Baseline:    r.baseline.Name(),
		Heuristic:   r.heuristic.Name(),
		Outcomes:    outcomes,
	}
	if len(outcomes) > 0 {
		for _, o := range outcomes {
			report.BaselineVariance += o.BaselineVariance
			report.HeuristicVariance += o.HeuristicVariance
		}
		report.BaselineVariance /= float64(len(outcomes))
		report.HeuristicVariance /= float64(len(outcomes))
	}

	metrics.UpdateBenchmarkVariance(report.Baseline, report.BaselineVariance)
	metrics.UpdateBenchmarkVariance(report.Heuristic, report.HeuristicVariance)
	r.logger.Info(ctx, fmt.Sprintf("Ran %d experiments in %f seconds", report.Experiments, report.Duration.Seconds()),
		logger.Int("failed", report.Failed),
		logger.Float64("baseline_variance", report.BaselineVariance),
		logger.Float64("heuristic_variance", report.HeuristicVariance),
	)
	return report, nil
}
