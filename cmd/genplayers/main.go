// Command genplayers writes a synthetic roster as a players JSON document or
// seeds it into the PostgreSQL players table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/okian/squadmaker/internal/adapters/repository"
	"github.com/okian/squadmaker/internal/adapters/source"
	"github.com/okian/squadmaker/internal/config"
	"github.com/okian/squadmaker/internal/domain/model"
	"github.com/okian/squadmaker/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("genplayers: " + err.Error() + "\n")
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
		count        = flag.Int("count", cfg.GeneratedPlayers, "Number of players to generate")
		seed         = flag.Int64("seed", cfg.RandomSeed, "Random seed (0 = time based)")
		distribution = flag.String("distribution", cfg.RatingDistribution, "Rating distribution: uniform or tiered")
		minRating    = flag.Int("min", cfg.MinRating, "Lowest generated rating")
		maxRating    = flag.Int("max", cfg.MaxRating, "Highest generated rating")
		output       = flag.String("output", "", "Write the JSON document to this file (default: stdout)")
		dsn          = flag.String("db", "", "Save the players to this PostgreSQL DSN instead of writing JSON")
	)
	flag.Parse()

	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		return err
	}
	log := logger.Named("genplayers")

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // not security sensitive
	players, err := source.GeneratePlayers(rng, *count, *minRating, *maxRating, *distribution)
	if err != nil {
		return err
	}

	if *dsn != "" {
		if err := save(ctx, *dsn, players, log); err != nil {
			return err
		}
		log.Info(ctx, fmt.Sprintf("Saved %d players", len(players)))
		return nil
	}
	if err := write(*output, players); err != nil {
		return err
	}
	log.Info(ctx, fmt.Sprintf("Generated %d players", len(players)), logger.Any("seed", *seed))
	return nil
}

func save(ctx context.Context, dsn string, players []*model.Player, log logger.Logger) error {
	store, err := repository.Open(dsn, repository.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	return store.SavePlayers(ctx, players)
}

func write(path string, players []*model.Player) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return source.EncodePlayers(w, players)
}
