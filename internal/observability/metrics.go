package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report pipeline.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec   // label: outcome={success,failure}
	StageDuration *prometheus.HistogramVec // label: stage={extract,summarize,rephrase,deliver}
	RunInFlight   prometheus.Gauge
	LastSuccess   prometheus.Gauge

	TilesExtracted prometheus.Histogram

	// Translation metrics.
	TranslateRounds    prometheus.Counter
	TranslateFallbacks prometheus.Counter // terms resolved by identity fallback
	TranslationCache   prometheus.Gauge   // current cache size, seeds included

	DeliveryFallbacks prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.StageDuration,
		m.RunInFlight,
		m.LastSuccess,
		m.TilesExtracted,
		m.TranslateRounds,
		m.TranslateFallbacks,
		m.TranslationCache,
		m.DeliveryFallbacks,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nhk_digest",
			Name:      "runs_total",
			Help:      "Completed pipeline runs by outcome.",
		}, []string{"outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nhk_digest",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
		RunInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nhk_digest",
			Name:      "run_in_flight",
			Help:      "1 while a pipeline run is executing.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nhk_digest",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successfully delivered report.",
		}),
		TilesExtracted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nhk_digest",
			Name:      "tiles_extracted",
			Help:      "Number of weather tiles scraped per run.",
			Buckets:   []float64{1, 5, 10, 15, 20, 25, 30},
		}),
		TranslateRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nhk_digest",
			Name:      "translate_rounds_total",
			Help:      "Batch translation rounds sent to the completion API.",
		}),
		TranslateFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nhk_digest",
			Name:      "translate_identity_fallbacks_total",
			Help:      "Terms left untranslated after all rounds, mapped to themselves.",
		}),
		TranslationCache: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nhk_digest",
			Name:      "translation_cache_entries",
			Help:      "Entries in the translation cache, seed dictionary included.",
		}),
		DeliveryFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nhk_digest",
			Name:      "delivery_fallbacks_total",
			Help:      "Deliveries that fell back to separate image and text messages.",
		}),
	}
}
