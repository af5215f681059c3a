// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and SQUADMAKER_* env vars.
// - Failures are reported as ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/okian/squadmaker/internal/adapters/source"
	"github.com/okian/squadmaker/internal/domain/balance"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, receives a copy of every log record.
	LogFile string `koanf:"log_file"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Strategy names the balancing strategy used by the service.
	Strategy string `koanf:"strategy"`

	// PlayerSource selects where players come from: file, rest, generated or postgres.
	PlayerSource string `koanf:"player_source"`

	// PlayersFile is the JSON document read by the file source.
	PlayersFile string `koanf:"players_file"`

	// PlayersURL is the endpoint read by the rest source.
	PlayersURL string `koanf:"players_url"`

	// SourceTimeoutMS bounds each REST request.
	SourceTimeoutMS int `koanf:"source_timeout_ms"`

	// GeneratedPlayers is the roster size of the generated source.
	GeneratedPlayers int `koanf:"generated_players"`

	// MinRating and MaxRating bound generated ratings (inclusive).
	MinRating int `koanf:"min_rating"`
	MaxRating int `koanf:"max_rating"`

	// RatingDistribution is uniform or tiered.
	RatingDistribution string `koanf:"rating_distribution"`

	// RandomSeed seeds the generator and the random strategy. Zero means time based.
	RandomSeed int64 `koanf:"random_seed"`

	// DatabaseDSN is the PostgreSQL connection string for the postgres source.
	DatabaseDSN string `koanf:"database_dsn"`

	// QueueSize bounds the benchmark experiment queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of benchmark workers.
	WorkerCount int `koanf:"worker_count"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          LogFormatText,
		Addr:               ":9080",
		Strategy:           balance.MinimizeDeltaName,
		PlayerSource:       source.KindFile,
		PlayersFile:        "data/players.json",
		SourceTimeoutMS:    10_000,
		GeneratedPlayers:   40,
		MinRating:          source.DefaultMinRating,
		MaxRating:          source.DefaultMaxRating,
		RatingDistribution: source.DistributionUniform,
		QueueSize:          1_024,
		WorkerCount:        runtime.NumCPU(),
	}
}

// SourceTimeout returns SourceTimeoutMS as a duration.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutMS) * time.Millisecond
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: unknown log_format '%s'", ErrInvalidConfig, c.LogFormat)
	}
	if !slices.Contains(balance.Names(), c.Strategy) {
		return fmt.Errorf("%w: unknown strategy '%s'", ErrInvalidConfig, c.Strategy)
	}

	switch c.PlayerSource {
	case source.KindFile:
		if c.PlayersFile == "" {
			return fmt.Errorf("%w: players_file is required for the file source", ErrInvalidConfig)
		}
	case source.KindREST:
		if c.PlayersURL == "" {
			return fmt.Errorf("%w: players_url is required for the rest source", ErrInvalidConfig)
		}
	case source.KindPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("%w: database_dsn is required for the postgres source", ErrInvalidConfig)
		}
	case source.KindGenerated:
		if c.GeneratedPlayers < 0 {
			return fmt.Errorf("%w: generated_players must not be negative", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown player_source '%s'", ErrInvalidConfig, c.PlayerSource)
	}

	if c.MinRating < 0 || c.MinRating > c.MaxRating {
		return fmt.Errorf("%w: invalid rating range [%d, %d]", ErrInvalidConfig, c.MinRating, c.MaxRating)
	}
	switch c.RatingDistribution {
	case source.DistributionUniform, source.DistributionTiered:
	default:
		return fmt.Errorf("%w: unknown rating_distribution '%s'", ErrInvalidConfig, c.RatingDistribution)
	}
	return nil
}
