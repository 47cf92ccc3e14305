package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	airlockTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airlock",
		Subsystem: "requests",
		Name:      "transitions_total",
		Help:      "Total number of airlock request status transitions.",
	}, []string{"from", "to"})

	airlockPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airlock",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Total number of failed airlock event publishes by phase.",
	}, []string{"phase"})
)
