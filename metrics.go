/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import "github.com/prometheus/client_golang/prometheus"

// MetricsCollector represents a collector of metrics to analyze how the Gate is used.
type MetricsCollector interface {
	// IncAdmittedEvents increments the total number of events admitted and recorded by Hit.
	IncAdmittedEvents()

	// IncDeniedEvents increments the total number of events denied by Hit.
	IncDeniedEvents()

	// IncCleanupSweeps increments the total number of finished Cleanup sweeps.
	IncCleanupSweeps()

	// AddCleanupRemovedKeys increments the total number of keys removed by Cleanup sweeps.
	AddCleanupRemovedKeys(int)
}

// PrometheusMetricsOpts represents options for PrometheusMetrics.
type PrometheusMetricsOpts struct {
	// Namespace is a namespace for metrics. It will be prepended to all metric names.
	Namespace string

	// ConstLabels is a set of labels that will be applied to all metrics.
	ConstLabels prometheus.Labels

	// CurriedLabelNames is a list of label names that will be curried with the provided labels.
	// See PrometheusMetrics.MustCurryWith method for more details.
	// Keep in mind that if this list is not empty,
	// PrometheusMetrics.MustCurryWith method must be called further with the same labels.
	// Otherwise, the collector will panic.
	CurriedLabelNames []string
}

// PrometheusMetrics represents Prometheus metrics for the Gate.
type PrometheusMetrics struct {
	AdmittedEventsTotal     *prometheus.CounterVec
	DeniedEventsTotal       *prometheus.CounterVec
	CleanupSweepsTotal      *prometheus.CounterVec
	CleanupRemovedKeysTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates a new instance of PrometheusMetrics with default options.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{})
}

// NewPrometheusMetricsWithOpts creates a new instance of PrometheusMetrics with the provided options.
func NewPrometheusMetricsWithOpts(opts PrometheusMetricsOpts) *PrometheusMetrics {
	admittedEventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "rate_gate_admitted_events_total",
			Help:        "Number of events admitted and recorded by the gate.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	deniedEventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "rate_gate_denied_events_total",
			Help:        "Number of events denied by the gate because the limit was reached.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	cleanupSweepsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "rate_gate_cleanup_sweeps_total",
			Help:        "Number of finished cleanup sweeps.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	cleanupRemovedKeysTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "rate_gate_cleanup_removed_keys_total",
			Help:        "Number of fully expired keys removed by cleanup sweeps.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	return &PrometheusMetrics{
		AdmittedEventsTotal:     admittedEventsTotal,
		DeniedEventsTotal:       deniedEventsTotal,
		CleanupSweepsTotal:      cleanupSweepsTotal,
		CleanupRemovedKeysTotal: cleanupRemovedKeysTotal,
	}
}

// MustCurryWith curries the metrics collector with the provided labels.
func (pm *PrometheusMetrics) MustCurryWith(labels prometheus.Labels) *PrometheusMetrics {
	return &PrometheusMetrics{
		AdmittedEventsTotal:     pm.AdmittedEventsTotal.MustCurryWith(labels),
		DeniedEventsTotal:       pm.DeniedEventsTotal.MustCurryWith(labels),
		CleanupSweepsTotal:      pm.CleanupSweepsTotal.MustCurryWith(labels),
		CleanupRemovedKeysTotal: pm.CleanupRemovedKeysTotal.MustCurryWith(labels),
	}
}

// MustRegister does registration of metrics collector in Prometheus and panics if any error occurs.
func (pm *PrometheusMetrics) MustRegister() {
	prometheus.MustRegister(
		pm.AdmittedEventsTotal,
		pm.DeniedEventsTotal,
		pm.CleanupSweepsTotal,
		pm.CleanupRemovedKeysTotal,
	)
}

// Unregister cancels registration of metrics collector in Prometheus.
func (pm *PrometheusMetrics) Unregister() {
	prometheus.Unregister(pm.AdmittedEventsTotal)
	prometheus.Unregister(pm.DeniedEventsTotal)
	prometheus.Unregister(pm.CleanupSweepsTotal)
	prometheus.Unregister(pm.CleanupRemovedKeysTotal)
}

// IncAdmittedEvents increments the total number of events admitted and recorded by Hit.
func (pm *PrometheusMetrics) IncAdmittedEvents() {
	pm.AdmittedEventsTotal.With(nil).Inc()
}

// IncDeniedEvents increments the total number of events denied by Hit.
func (pm *PrometheusMetrics) IncDeniedEvents() {
	pm.DeniedEventsTotal.With(nil).Inc()
}

// IncCleanupSweeps increments the total number of finished Cleanup sweeps.
func (pm *PrometheusMetrics) IncCleanupSweeps() {
	pm.CleanupSweepsTotal.With(nil).Inc()
}

// AddCleanupRemovedKeys increments the total number of keys removed by Cleanup sweeps.
func (pm *PrometheusMetrics) AddCleanupRemovedKeys(n int) {
	pm.CleanupRemovedKeysTotal.With(nil).Add(float64(n))
}

type disabledMetrics struct{}

func (disabledMetrics) IncAdmittedEvents()        {}
func (disabledMetrics) IncDeniedEvents()          {}
func (disabledMetrics) IncCleanupSweeps()         {}
func (disabledMetrics) AddCleanupRemovedKeys(int) {}

var disabledMetricsCollector = disabledMetrics{}
