// Package metrics exposes prometheus counters for report runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsGenerated counts generated reports by trigger source.
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mailbrief_reports_generated_total",
		Help: "Number of inbox reports generated, by trigger.",
	}, []string{"trigger"})

	// EmailsProcessed counts emails folded into reports.
	EmailsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mailbrief_emails_processed_total",
		Help: "Number of emails processed into reports.",
	})

	// DeliveryFailures counts failed report sends.
	DeliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mailbrief_delivery_failures_total",
		Help: "Number of failed report deliveries.",
	})
)
