package app

import (
	"log"
	"net/http"
	"time"

	"egov/nlp/forest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	STATUS_OK       = "ok"
	STATUS_REJECTED = "rejected"
	STATUS_FAILED   = "failed"

	STAGE_HEADED    = "headed"
	STAGE_INSIDE    = "inside"
	STAGE_FLOW      = "flow"
	STAGE_GOVERNORS = "governors"
	STAGE_SORT      = "sort"
)

var (
	sentencesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "egov_sentences_total",
		Help: "Sentences processed by outcome",
	}, []string{"status"})

	violationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "egov_forest_violations_total",
		Help: "Soft forest invariant violations by kind",
	}, []string{"kind"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "egov_stage_duration_seconds",
		Help:    "Duration of each estimation stage per sentence",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"stage"})

	forestRules = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "egov_forest_rules",
		Help:    "Rules per input forest",
		Buckets: prometheus.ExponentialBuckets(8, 4, 8),
	})

	headSlots = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "egov_head_slots",
		Help:    "Head slots per headed forest",
		Buckets: prometheus.ExponentialBuckets(8, 4, 8),
	})
)

func observeStage(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func countViolations(violations []forest.Violation) {
	for _, v := range violations {
		violationsTotal.WithLabelValues(v.Kind.String()).Inc()
	}
}

// ServeMetrics exposes /metrics on addr in the background
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Println("Serving metrics on", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Println("Metrics listener stopped:", err)
		}
	}()
}
