package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/squadmaker/internal/adapters/source"
	service "github.com/okian/squadmaker/internal/app"
	"github.com/okian/squadmaker/internal/config"
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/internal/domain/model"
	"github.com/okian/squadmaker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type failingSource struct{ err error }

func (f failingSource) Name() string { return "failing" }

func (f failingSource) Players(context.Context) ([]*model.Player, error) { return nil, f.err }

type closingSource struct {
	*source.Static
	closed bool
}

func (c *closingSource) Close() error {
	c.closed = true
	return nil
}

func roster() []*model.Player {
	return []*model.Player{
		model.NewPlayer("1", "a", "", model.Ratings{10, 10, 10}),
		model.NewPlayer("2", "b", "", model.Ratings{90, 90, 90}),
		model.NewPlayer("3", "c", "", model.Ratings{50, 50, 50}),
		model.NewPlayer("4", "d", "", model.Ratings{40, 60, 50}),
		model.NewPlayer("5", "e", "", model.Ratings{60, 40, 50}),
	}
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service without a source", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("When starting it", func() {
			err := svc.Start(context.Background())

			Convey("Then it should refuse to start", func() {
				So(errors.Is(err, service.ErrNoSource), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithSource(source.NewStatic(roster()...)))

		Convey("When loading players", func() {
			_, err := svc.Players(context.Background())

			Convey("Then it should report that it is not started", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})

	Convey("Given a started service with a closable source", t, func() {
		src := &closingSource{Static: source.NewStatic(roster()...)}
		svc := service.New(service.WithSource(src))
		So(svc.Start(context.Background()), ShouldBeNil)
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()
			svc.Stop()

			Convey("Then the source should be closed and the service stopped", func() {
				So(src.closed, ShouldBeTrue)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
				So(stats["source"], ShouldEqual, source.KindStatic)
			})
		})
	})
}

func TestService_Players(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithSource(source.NewStatic(roster()...)))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When listing players", func() {
			players, err := svc.Players(context.Background())

			Convey("Then they should be ordered by total rating", func() {
				So(err, ShouldBeNil)
				ids := make([]string, len(players))
				for i, p := range players {
					ids[i] = p.ID()
				}
				So(ids, ShouldResemble, []string{"2", "3", "4", "5", "1"})
				So(svc.GetStats()["playersSourced"], ShouldEqual, 5)
			})
		})
	})
}

func TestService_MakeSquads(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSource(source.NewStatic(roster()...)))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When building two squads from five players", func() {
			res, err := svc.MakeSquads(ctx, 2)

			Convey("Then every player should be placed once", func() {
				So(err, ShouldBeNil)
				So(len(res.Squads), ShouldEqual, 2)
				So(len(res.WaitingList), ShouldEqual, 1)
				seen := map[string]bool{res.WaitingList[0].ID(): true}
				for _, sq := range res.Squads {
					So(sq.Len(), ShouldEqual, 2)
					for _, p := range sq.Players() {
						So(seen[p.ID()], ShouldBeFalse)
						seen[p.ID()] = true
					}
				}
				So(len(seen), ShouldEqual, 5)
			})

			Convey("Then squad members should be ordered by total rating", func() {
				for _, sq := range res.Squads {
					ps := sq.Players()
					So(ps[0].TotalRating(), ShouldBeGreaterThanOrEqualTo, ps[1].TotalRating())
				}
			})

			Convey("Then stats should reflect the request", func() {
				stats := svc.GetStats()
				So(stats["balanceRequests"], ShouldEqual, 1)
				So(stats["squadsBuilt"], ShouldEqual, 2)
				So(stats["waitingList"], ShouldEqual, 1)
				So(stats["strategy"], ShouldEqual, balance.MinimizeDeltaName)
			})
		})

		Convey("When the request is invalid", func() {
			_, errZero := svc.MakeSquads(ctx, 0)
			_, errMany := svc.MakeSquads(ctx, 6)

			Convey("Then an invalid request error should be returned", func() {
				So(errors.Is(errZero, balance.ErrInvalidRequest), ShouldBeTrue)
				So(errors.Is(errMany, balance.ErrInvalidRequest), ShouldBeTrue)
				So(errMany.Error(), ShouldContainSubstring, "you have 5 players but need at least 6 players")
				So(svc.GetStats()["balanceRequests"], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service whose source fails", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSource(failingSource{err: source.ErrSourceUnavailable}))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When building squads", func() {
			_, err := svc.MakeSquads(ctx, 2)

			Convey("Then the source error should be returned", func() {
				So(errors.Is(err, source.ErrSourceUnavailable), ShouldBeTrue)
				So(errors.Is(err, balance.ErrInvalidRequest), ShouldBeFalse)
			})
		})
	})

	Convey("Given a service using the random strategy", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.Strategy = balance.RandomName
		cfg.RandomSeed = 3
		strategy, err := service.StrategyFromConfig(cfg)
		So(err, ShouldBeNil)

		svc := service.New(service.WithSource(source.NewStatic(roster()...)), service.WithStrategy(strategy))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When building five single player squads", func() {
			res, err := svc.MakeSquads(ctx, 5)

			Convey("Then nobody should wait", func() {
				So(err, ShouldBeNil)
				So(len(res.Squads), ShouldEqual, 5)
				So(res.WaitingList, ShouldBeEmpty)
				So(svc.GetStats()["strategy"], ShouldEqual, balance.RandomName)
			})
		})
	})
}

func TestSourceFromConfig(t *testing.T) {
	Convey("Given configs for each source kind", t, func() {
		ctx := context.Background()

		Convey("When building file, rest and generated sources", func() {
			cfg := config.New()
			file, errFile := service.SourceFromConfig(ctx, cfg, logger.Nop())

			cfg.PlayerSource = source.KindREST
			cfg.PlayersURL = "http://localhost:1/players"
			rest, errREST := service.SourceFromConfig(ctx, cfg, logger.Nop())

			cfg.PlayerSource = source.KindGenerated
			cfg.GeneratedPlayers = 12
			cfg.RandomSeed = 5
			gen, errGen := service.SourceFromConfig(ctx, cfg, logger.Nop())

			Convey("Then each should be of the requested kind", func() {
				So(errFile, ShouldBeNil)
				So(errREST, ShouldBeNil)
				So(errGen, ShouldBeNil)
				So(file.Name(), ShouldEqual, source.KindFile)
				So(rest.Name(), ShouldEqual, source.KindREST)
				So(gen.Name(), ShouldEqual, source.KindGenerated)

				players, err := gen.Players(ctx)
				So(err, ShouldBeNil)
				So(len(players), ShouldEqual, 12)
			})
		})

		Convey("When the kind is unknown", func() {
			cfg := config.New()
			cfg.PlayerSource = "ftp"
			_, err := service.SourceFromConfig(ctx, cfg, logger.Nop())

			Convey("Then it should be an invalid config", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the strategy is unknown", func() {
			cfg := config.New()
			cfg.Strategy = "genetic"
			_, err := service.StrategyFromConfig(cfg)

			Convey("Then it should fail", func() {
				So(errors.Is(err, balance.ErrUnknownStrategy), ShouldBeTrue)
			})
		})
	})
}

func TestFromConfig(t *testing.T) {
	Convey("Given a full service config", t, func() {
		ctx := context.Background()

		Convey("When the sources and strategy are valid", func() {
			cfg := config.New()
			cfg.PlayerSource = source.KindGenerated
			cfg.GeneratedPlayers = 9
			cfg.RandomSeed = 3
			svc, err := service.FromConfig(ctx, cfg, logger.Nop())

			Convey("Then the service should be started and usable", func() {
				So(err, ShouldBeNil)
				defer svc.Stop()
				res, err := svc.MakeSquads(ctx, 2)
				So(err, ShouldBeNil)
				So(len(res.Squads), ShouldEqual, 2)
				So(len(res.WaitingList), ShouldEqual, 1)
			})
		})

		Convey("When the strategy is unknown and the source is a database", func() {
			cfg := config.New()
			cfg.Strategy = "genetic"
			cfg.PlayerSource = source.KindPostgres
			cfg.DatabaseDSN = "host=127.0.0.1 port=1 user=nobody dbname=none sslmode=disable connect_timeout=1"
			svc, err := service.FromConfig(ctx, cfg, logger.Nop())

			Convey("Then it should fail on the strategy before any connection is opened", func() {
				So(svc, ShouldBeNil)
				So(errors.Is(err, balance.ErrUnknownStrategy), ShouldBeTrue)
				So(errors.Is(err, source.ErrSourceUnavailable), ShouldBeFalse)
			})
		})
	})
}
