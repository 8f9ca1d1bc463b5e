package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type LendingMetrics struct {
	IssuesTotal  *prometheus.CounterVec
	ReturnsTotal *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lending_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Lending = LendingMetrics{
		IssuesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_engine_issues_total",
				Help: "Total number of issue operations by outcome.",
			},
			[]string{"status"},
		),
		ReturnsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_engine_returns_total",
				Help: "Total number of return operations by outcome.",
			},
			[]string{"status"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordIssue(status string) {
	Lending.IssuesTotal.WithLabelValues(status).Inc()
}

func RecordReturn(status string) {
	Lending.ReturnsTotal.WithLabelValues(status).Inc()
}
