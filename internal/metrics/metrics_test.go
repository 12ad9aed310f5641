package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveRequest(t *testing.T) {
	r := New(nil)

	r.ObserveRequest("search", OutcomeOK, 120*time.Millisecond)
	r.ObserveRequest("search", OutcomeOK, 80*time.Millisecond)
	r.ObserveRequest("search", OutcomeUpstreamError, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.CatalogRequests.WithLabelValues("search", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CatalogRequests.WithLabelValues("search", OutcomeUpstreamError)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.CatalogRequestDuration))
}

func TestRecorder_TransitionsAndStale(t *testing.T) {
	r := New(nil)

	r.ObserveTransition("initialize", OutcomeOK)
	r.ObserveStale("search", false)
	r.ObserveStale("search", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Transitions.WithLabelValues("initialize", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.StaleCompletions.WithLabelValues("search", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.StaleCompletions.WithLabelValues("search", "true")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveRequest("genres", OutcomeOK, time.Second)
		r.ObserveTransition("search", OutcomeOK)
		r.ObserveStale("search", false)
	})
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.ObserveTransition("select", OutcomeOK)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["watchnext_view_transitions_total"])
}
