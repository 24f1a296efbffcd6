package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.AssignmentCreated()
	m.SubmissionCreated()
	m.SubmissionCreated()
	m.GradeRecorded()
	m.AuthRejected("forbidden")
	m.ObserveRequest("/assignments", http.MethodGet, "200", 0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.assignmentsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gradesRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authRejections.WithLabelValues("forbidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/assignments", "GET", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AssignmentCreated()
		m.SubmissionCreated()
		m.GradeRecorded()
		m.AuthRejected("unauthorized")
		m.ObserveRequest("/", http.MethodGet, "200", 0)
		m.ObserveMarks(90)
	})
}

func TestMetrics_ObserveMarks(t *testing.T) {
	m := New()
	m.ObserveMarks(90)
	m.ObserveMarks(95.5)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "academia_graded_marks" {
			continue
		}
		found = true
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(2), h.GetSampleCount())
		assert.InDelta(t, 185.5, h.GetSampleSum(), 1e-9)
	}
	assert.True(t, found)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.GradeRecorded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "academia_grades_recorded_total 1")
}
