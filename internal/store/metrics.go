package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedsim_pool_refreshes_total",
		Help: "Pool refresh cycles completed, per platform.",
	}, []string{"platform"})

	refreshFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedsim_pool_refresh_failures_total",
		Help: "Refresh cycles that degraded to an empty pool, per platform.",
	}, []string{"platform"})

	poolSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "feedsim_pool_size",
		Help: "Events currently cached per platform.",
	}, []string{"platform"})

	pagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedsim_pages_served_total",
		Help: "Pages read from the store, per platform.",
	}, []string{"platform"})
)
