// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog Metrics
	CatalogGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_games",
			Help: "Number of games in the active catalog snapshot",
		},
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"loader"},
	)

	CatalogLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_load_errors_total",
			Help: "Total number of failed catalog loads",
		},
		[]string{"loader"},
	)

	CatalogGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_generation",
			Help: "Generation number of the active catalog snapshot",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by mode and outcome",
		},
		[]string{"mode", "outcome"}, // mode: similar, gems, pool, platforms; outcome: ok, empty, invalid, error
	)

	RecommendStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_stage_duration_seconds",
			Help:    "Duration of each recommendation pipeline stage",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"stage"}, // filter, vectorize, similarity, rank
	)

	RecommendPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_pool_size",
			Help:    "Number of games in candidate pools",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		},
	)

	RecommendVocabularySize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_vocabulary_size",
			Help:    "Number of terms kept in per-pool vector spaces",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_results",
			Help:    "Number of ranked results returned",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"mode"},
	)

	// Model Cache Metrics
	ModelCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_model_cache_hits_total",
			Help: "Total number of pool model cache hits",
		},
	)

	ModelCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_model_cache_misses_total",
			Help: "Total number of pool model cache misses",
		},
	)

	ModelCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_cache_entries",
			Help: "Current number of cached pool models",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordCatalogLoad records the outcome of a catalog load.
func RecordCatalogLoad(loader string, duration time.Duration, games int, err error) {
	CatalogLoadDuration.WithLabelValues(loader).Observe(duration.Seconds())
	if err != nil {
		CatalogLoadErrors.WithLabelValues(loader).Inc()
		return
	}
	CatalogGames.Set(float64(games))
}

// SetCatalogGeneration publishes the generation of the active snapshot.
func SetCatalogGeneration(generation uint64) {
	CatalogGeneration.Set(float64(generation))
}

// RecordRecommendation records a finished recommendation request.
func RecordRecommendation(mode, outcome string, results int) {
	RecommendRequests.WithLabelValues(mode, outcome).Inc()
	if outcome == "ok" || outcome == "empty" {
		RecommendResults.WithLabelValues(mode).Observe(float64(results))
	}
}

// RecordStage records the duration of one pipeline stage.
func RecordStage(stage string, duration time.Duration) {
	RecommendStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordPoolModel records the shape of a freshly built pool model.
func RecordPoolModel(poolSize, vocabularySize int) {
	RecommendPoolSize.Observe(float64(poolSize))
	RecommendVocabularySize.Observe(float64(vocabularySize))
}

// RecordModelCache records a model cache lookup.
func RecordModelCache(hit bool, entries int) {
	if hit {
		ModelCacheHits.Inc()
	} else {
		ModelCacheMisses.Inc()
	}
	ModelCacheEntries.Set(float64(entries))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
