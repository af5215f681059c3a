package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/squadmaker/internal/domain/model"
	"github.com/okian/squadmaker/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func player(name string, skating, shooting, checking float64) *model.Player {
	r, err := model.NewRatings(skating, shooting, checking)
	if err != nil {
		panic(err)
	}
	return model.NewPlayer(name, name, "", r)
}

func TestMeanRatings(t *testing.T) {
	Convey("Given a set of players", t, func() {
		players := []*model.Player{
			player("a", 20, 55, 25),
			player("b", 10, 5, 30),
			player("c", 90, 30, 5),
		}

		Convey("When computing the means", func() {
			m, err := scoring.MeanRatings(players)

			Convey("Then each skill should be averaged independently", func() {
				So(err, ShouldBeNil)
				So(m, ShouldResemble, scoring.Means{40, 30, 20})
			})
		})
	})

	Convey("Given no players", t, func() {
		_, err := scoring.MeanRatings(nil)

		Convey("Then it should fail", func() {
			So(errors.Is(err, scoring.ErrNoPlayers), ShouldBeTrue)
		})
	})
}

func TestScore(t *testing.T) {
	Convey("Given a player and population means", t, func() {
		p := player("p1", 100, 5, 52)
		m := scoring.Means{40, 40, 50}

		Convey("When scoring the player", func() {
			sp := scoring.Score(p, m)

			Convey("Then deltas should be rating minus mean", func() {
				So(sp.Player, ShouldEqual, p)
				So(sp.Delta(model.Skating), ShouldEqual, 60.0)
				So(sp.Delta(model.Shooting), ShouldEqual, -35.0)
				So(sp.Delta(model.Checking), ShouldEqual, 2.0)
			})

			Convey("And the cumulative delta should sum absolute deltas", func() {
				So(sp.CumulativeDelta(), ShouldEqual, 97.0)
			})
		})

		Convey("When re-scoring an already scored player against new means", func() {
			first := scoring.Score(p, m)
			second := scoring.Score(first.Player, scoring.Means{0, 0, 0})

			Convey("Then deltas should derive from the base ratings", func() {
				So(second.Player, ShouldEqual, p)
				So(second.Deltas, ShouldResemble, scoring.Deltas{100, 5, 52})
			})
		})
	})
}

func TestScorePlayers(t *testing.T) {
	Convey("Given a population", t, func() {
		players := []*model.Player{player("a", 10, 20, 30), player("b", 30, 20, 10)}

		scored, m, err := scoring.ScorePlayers(players)

		Convey("Then every player should be scored against the population mean in input order", func() {
			So(err, ShouldBeNil)
			So(m, ShouldResemble, scoring.Means{20, 20, 20})
			So(len(scored), ShouldEqual, 2)
			So(scored[0].Player, ShouldEqual, players[0])
			So(scored[0].Deltas, ShouldResemble, scoring.Deltas{-10, 0, 10})
			So(scored[1].Deltas, ShouldResemble, scoring.Deltas{10, 0, -10})
			So(scoring.Players(scored), ShouldResemble, players)
		})
	})
}

func TestScoredSquad(t *testing.T) {
	Convey("Given two scored players and fixed means", t, func() {
		m := scoring.Means{60, 55, 40}
		p1 := scoring.Score(player("p1", 34, 89, 10), m)
		p2 := scoring.Score(player("p2", 0, 55, 98), m)
		squad := scoring.NewScoredSquad(p1, p2)

		Convey("Then the squad delta should sum signed deltas before taking absolute values", func() {
			So(squad.DeltaSums(), ShouldResemble, scoring.Deltas{-86, 34, 28})
			So(squad.CumulativeDelta(), ShouldEqual, 148.0)
		})

		Convey("And the squad should expose its base players", func() {
			s := squad.Squad()
			So(s.Len(), ShouldEqual, 2)
			So(s.Players()[0], ShouldEqual, p1.Player)
			avg, ok := s.SkatingAverage()
			So(ok, ShouldBeTrue)
			So(avg, ShouldEqual, 17.0)
		})
	})

	Convey("Given complementary players", t, func() {
		m := scoring.Means{60, 0, 0}
		strongSkater := scoring.Score(player("s", 80, 34, 0), m)
		strongShooter := scoring.Score(player("t", 0, 24, 0), m)
		squad := scoring.NewScoredSquad(strongSkater, strongShooter)

		Convey("Then opposite deviations should cancel", func() {
			So(strongSkater.Deltas, ShouldResemble, scoring.Deltas{20, 34, 0})
			So(strongShooter.Deltas, ShouldResemble, scoring.Deltas{-60, 24, 0})
			So(squad.CumulativeDelta(), ShouldEqual, 98.0)
			So(strongSkater.CumulativeDelta()+strongShooter.CumulativeDelta(), ShouldEqual, 138.0)
		})
	})

	Convey("Given a squad and a candidate", t, func() {
		m := scoring.Means{50, 50, 50}
		squad := scoring.NewScoredSquad(scoring.Score(player("a", 70, 40, 50), m))
		candidate := scoring.Score(player("b", 30, 60, 55), m)

		Convey("When probing the candidate", func() {
			probe := squad.CumulativeDeltaWith(candidate)

			Convey("Then it should score the squad as if the candidate were appended", func() {
				So(probe, ShouldEqual, 5.0)
			})

			Convey("And it should leave the squad unchanged", func() {
				So(squad.Len(), ShouldEqual, 1)
				So(squad.CumulativeDelta(), ShouldEqual, 30.0)
			})

			Convey("And appending should match the probe", func() {
				squad.Add(candidate)
				So(squad.CumulativeDelta(), ShouldEqual, probe)
				So(len(squad.Members()), ShouldEqual, 2)
			})
		})
	})
}
