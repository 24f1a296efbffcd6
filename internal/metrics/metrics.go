// Package metrics holds the Prometheus collectors for the HTTP API and the workflow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "academia"

// Metrics groups every collector the service exports.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	assignmentsCreated prometheus.Counter
	submissionsCreated prometheus.Counter
	gradesRecorded     prometheus.Counter
	gradedMarks        prometheus.Histogram
	authRejections     *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		assignmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_created_total",
			Help:      "Assignments inserted.",
		}),
		submissionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_created_total",
			Help:      "Submissions inserted.",
		}),
		gradesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grades_recorded_total",
			Help:      "Grading updates applied.",
		}),
		gradedMarks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graded_marks",
			Help:      "Numeric marks awarded by grading updates.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		authRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_rejections_total",
			Help:      "Requests rejected by the session guard or ownership check.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.assignmentsCreated,
		m.submissionsCreated,
		m.gradesRecorded,
		m.gradedMarks,
		m.authRejections,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served request and its latency.
func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, status).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(seconds)
}

// AssignmentCreated counts an inserted assignment.
func (m *Metrics) AssignmentCreated() {
	if m == nil {
		return
	}
	m.assignmentsCreated.Inc()
}

// SubmissionCreated counts an inserted submission.
func (m *Metrics) SubmissionCreated() {
	if m == nil {
		return
	}
	m.submissionsCreated.Inc()
}

// GradeRecorded counts an applied grading update.
func (m *Metrics) GradeRecorded() {
	if m == nil {
		return
	}
	m.gradesRecorded.Inc()
}

// ObserveMarks records the numeric marks of a grading update.
func (m *Metrics) ObserveMarks(marks float64) {
	if m == nil {
		return
	}
	m.gradedMarks.Observe(marks)
}

// AuthRejected counts a rejection; reason is "unauthorized" or "forbidden".
func (m *Metrics) AuthRejected(reason string) {
	if m == nil {
		return
	}
	m.authRejections.WithLabelValues(reason).Inc()
}
