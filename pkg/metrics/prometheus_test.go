package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentflow/pkg/metrics"
)

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the package-level metrics", t, func() {
		metrics.RecordOperation("list_jobs")
		metrics.RecordOperationError("create_job", "duplicate_slug")
		metrics.RecordOperationLatency("list_jobs", 12)
		metrics.RecordInjectedFailure()
		metrics.RecordSimulatedLatency(250)
		metrics.UpdateStoreRecords("jobs", 25)
		metrics.RecordStoreTransaction()
		metrics.RecordSpeculativeApply()
		metrics.RecordRollback()
		metrics.RecordHTTPRequest("jobs", "GET", "200")
		metrics.RecordHTTPRequestDuration("jobs", "GET", "200", 15)

		Convey("Then every recorded family is gatherable from the registry", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			for _, want := range []string{
				"talentflow_pipeline_operations_total",
				"talentflow_pipeline_operation_errors_total",
				"talentflow_pipeline_operation_latency_milliseconds",
				"talentflow_pipeline_injected_failures_total",
				"talentflow_pipeline_simulated_latency_milliseconds",
				"talentflow_pipeline_store_records",
				"talentflow_pipeline_store_transactions_total",
				"talentflow_pipeline_speculative_applies_total",
				"talentflow_pipeline_rollbacks_total",
			} {
				So(names[want], ShouldBeTrue)
			}
		})
	})
}

func TestManagerOptions(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithNamespace("custom"),
			metrics.WithSubsystem("hiring"),
			metrics.WithHistogramBuckets([]float64{1, 10, 100}),
		)
		So(m, ShouldNotBeNil)

		Convey("Then its families carry the custom namespace", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
			for _, f := range families {
				So(f.GetName(), ShouldStartWith, "custom_hiring_")
			}
		})
	})
}
