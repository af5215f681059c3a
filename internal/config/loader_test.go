package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/squadmaker/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.PlayerSource, convey.ShouldEqual, "file")
				convey.So(cfg.Strategy, convey.ShouldEqual, "minimize-delta")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SQUADMAKER_ADDR", ":8080")
			_ = os.Setenv("SQUADMAKER_PLAYER_SOURCE", "generated")
			_ = os.Setenv("SQUADMAKER_GENERATED_PLAYERS", "64")
			_ = os.Setenv("SQUADMAKER_RANDOM_SEED", "42")
			_ = os.Setenv("SQUADMAKER_RATING_DISTRIBUTION", "tiered")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PlayerSource, convey.ShouldEqual, "generated")
				convey.So(cfg.GeneratedPlayers, convey.ShouldEqual, 64)
				convey.So(cfg.RandomSeed, convey.ShouldEqual, int64(42))
				convey.So(cfg.RatingDistribution, convey.ShouldEqual, "tiered")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# rest source
addr: ":9090"  # inline comment
player_source: rest
players_url: "http://localhost:3000/players"
source_timeout_ms: 2500
strategy: random
log_format: json
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SQUADMAKER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.PlayerSource, convey.ShouldEqual, "rest")
				convey.So(cfg.PlayersURL, convey.ShouldEqual, "http://localhost:3000/players")
				convey.So(cfg.SourceTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.Strategy, convey.ShouldEqual, "random")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MinRating, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
worker_count: 24
queue_size: 300
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SQUADMAKER_CONFIG", tmpFile)
			_ = os.Setenv("SQUADMAKER_ADDR", ":8080")
			_ = os.Setenv("SQUADMAKER_WORKER_COUNT", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 300)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SQUADMAKER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SQUADMAKER_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SQUADMAKER_GENERATED_PLAYERS", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SQUADMAKER_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the rest source has no url", func() {
			_ = os.Setenv("SQUADMAKER_PLAYER_SOURCE", "rest")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := config.Load(cctx)

			convey.Convey("Then it should not load", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SQUADMAKER_CONFIG",
		"SQUADMAKER_ADDR",
		"SQUADMAKER_PLAYER_SOURCE",
		"SQUADMAKER_GENERATED_PLAYERS",
		"SQUADMAKER_RANDOM_SEED",
		"SQUADMAKER_RATING_DISTRIBUTION",
		"SQUADMAKER_WORKER_COUNT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "squadmaker-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
