package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesTotal counts received updates by kind.
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmvault_updates_total",
		Help: "Telegram updates received, by kind.",
	}, []string{"kind"})

	// PersistsTotal counts movies saved to the database.
	PersistsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filmvault_movies_persisted_total",
		Help: "Movies saved to the database.",
	})

	// PersistFailures counts failed save attempts.
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filmvault_movie_persist_failures_total",
		Help: "Failed movie save attempts.",
	})

	// DeletesTotal counts movies removed by admins.
	DeletesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filmvault_movies_deleted_total",
		Help: "Movies deleted by admins.",
	})

	// SearchesTotal counts search queries handled.
	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filmvault_searches_total",
		Help: "Search queries handled.",
	})
)
