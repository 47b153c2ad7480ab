package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyrox_http_requests_total",
			Help: "Total HTTP requests handled",
		},
		[]string{"route", "status"},
	)

	// OCR
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyrox_ocr_extractions_total",
			Help: "Scoreboard extractions by engine and outcome (confidence tier or error kind)",
		},
		[]string{"engine", "outcome"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hyrox_ocr_upstream_duration_seconds",
			Help:    "Vision model call duration in seconds",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"engine"},
	)

	// Cache
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyrox_ocr_cache_lookups_total",
			Help: "Upstream response cache lookups by layer and result",
		},
		[]string{"layer", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		ExtractionsTotal,
		UpstreamDuration,
		CacheLookups,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
