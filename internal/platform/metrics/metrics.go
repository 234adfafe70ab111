// Package metrics defines the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ValidationRequests counts validation calls by mode and verdict.
	// Modes: text, lesson, reading, structure.
	ValidationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocabval_validation_requests_total",
		Help: "Validation requests by mode and verdict.",
	}, []string{"mode", "valid"})

	// RecommendRequests counts recommendation calls.
	RecommendRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocabval_recommend_requests_total",
		Help: "Content recommendation requests.",
	})

	// SyncRuns counts sync attempts by outcome: changed, unchanged, failed.
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocabval_sync_runs_total",
		Help: "Curriculum sync runs by outcome.",
	}, []string{"outcome"})

	// SnapshotWords tracks the word count of the active curriculum
	// snapshot; zero means no snapshot is loaded.
	SnapshotWords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vocabval_snapshot_words",
		Help: "Distinct words in the active curriculum snapshot.",
	})
)
