package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/squadmaker/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Strategy, convey.ShouldEqual, "minimize-delta")
			convey.So(cfg.PlayerSource, convey.ShouldEqual, "file")
			convey.So(cfg.PlayersFile, convey.ShouldEqual, "data/players.json")
			convey.So(cfg.MinRating, convey.ShouldEqual, 20)
			convey.So(cfg.MaxRating, convey.ShouldEqual, 100)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.SourceTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with inconsistent settings", t, func() {
		cases := map[string]func(c *config.Config){
			"addr must not be empty":                 func(c *config.Config) { c.Addr = "" },
			"unknown log_format 'xml'":               func(c *config.Config) { c.LogFormat = "xml" },
			"unknown strategy 'genetic'":             func(c *config.Config) { c.Strategy = "genetic" },
			"unknown player_source 'ftp'":            func(c *config.Config) { c.PlayerSource = "ftp" },
			"players_file is required":               func(c *config.Config) { c.PlayersFile = "" },
			"players_url is required":                func(c *config.Config) { c.PlayerSource = "rest" },
			"database_dsn is required":               func(c *config.Config) { c.PlayerSource = "postgres" },
			"generated_players must not be negative": func(c *config.Config) { c.PlayerSource = "generated"; c.GeneratedPlayers = -1 },
			"invalid rating range [90, 10]":          func(c *config.Config) { c.MinRating, c.MaxRating = 90, 10 },
			"unknown rating_distribution 'normal'":   func(c *config.Config) { c.RatingDistribution = "normal" },
		}

		for want, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, want)
		}
	})

	convey.Convey("Given a generated source config", t, func() {
		cfg := config.New()
		cfg.PlayerSource = "generated"
		cfg.PlayersFile = ""
		cfg.RatingDistribution = "tiered"
		cfg.Strategy = "random"

		convey.So(cfg.Validate(), convey.ShouldBeNil)
	})
}
