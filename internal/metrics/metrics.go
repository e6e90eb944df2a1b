// Package metrics defines the Prometheus collectors for the reset pages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Flow names used as label values.
const (
	FlowRequest = "request"
	FlowConfirm = "confirm"
)

// Outcome label values for FlowSubmissions.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeTokenMissing    = "token_missing"
	OutcomeServiceError    = "service_error"
	OutcomeInFlight        = "in_flight"
	OutcomeClosed          = "closed"
)

// FlowSubmissions counts submit attempts by flow and outcome.
var FlowSubmissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "goby_auth_flow_submissions_total",
		Help: "Total number of password reset form submissions",
	},
	[]string{"flow", "outcome"},
)

// AccountCallDuration observes how long account service calls take.
var AccountCallDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "goby_auth_account_call_duration_seconds",
		Help:    "Account service call duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"flow"},
)

// FlowInstances tracks how many flow instances are held in memory.
var FlowInstances = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "goby_auth_flow_instances",
		Help: "Number of live password reset flow instances",
	},
	[]string{"flow"},
)

// Register registers the collectors with reg. It panics on duplicate
// registration, following the prometheus convention.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(FlowSubmissions)
	reg.MustRegister(AccountCallDuration)
	reg.MustRegister(FlowInstances)
}

// RecordSubmission increments the submission counter.
func RecordSubmission(flow, outcome string) {
	FlowSubmissions.WithLabelValues(flow, outcome).Inc()
}

// RecordAccountCall observes a single account service call.
func RecordAccountCall(flow string, d time.Duration) {
	AccountCallDuration.WithLabelValues(flow).Observe(d.Seconds())
}

// SetInstances sets the live instance gauge for a flow.
func SetInstances(flow string, n int) {
	FlowInstances.WithLabelValues(flow).Set(float64(n))
}
