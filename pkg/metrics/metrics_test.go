package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry and options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.squadsBuilt.WithLabelValues("random").Add(3)

			Convey("Then metrics should be registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				So(testutil.ToFloat64(manager.squadsBuilt.WithLabelValues("random")), ShouldEqual, 3.0)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_squads_built_total")
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then registering again should panic", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording balancing metrics", func() {
			before := testutil.ToFloat64(globalManager.balanceRequests.WithLabelValues("minimize-delta", "ok"))
			RecordBalanceRequest("minimize-delta", "ok")
			RecordBalanceLatency("minimize-delta", 1.5)
			RecordSquadsBuilt("minimize-delta", 4)
			UpdateWaitingListSize(2)

			Convey("Then the values should be observable", func() {
				So(testutil.ToFloat64(globalManager.balanceRequests.WithLabelValues("minimize-delta", "ok")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.waitingListSize), ShouldEqual, 2.0)
			})
		})

		Convey("When recording ingestion, HTTP and benchmark metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					UpdatePlayersSourced("file", 18)
					RecordSourceError("rest")
					RecordHTTPRequest("/api/squads", "GET", "200")
					RecordHTTPRequestDuration("/api/squads", "GET", "200", 3)
					UpdateQueueSize(5)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					UpdateWorkerCount(4)
					RecordBenchmarkExperiment("random")
					UpdateBenchmarkVariance("random", 12.5)
				}, ShouldNotPanic)
				So(testutil.ToFloat64(globalManager.playersSourced.WithLabelValues("file")), ShouldEqual, 18.0)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should be the custom registry", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}
