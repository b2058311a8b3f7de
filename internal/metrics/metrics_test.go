package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	r.LinkGenerated()
	r.LinkGenerated()
	r.GateDecision("card", true)
	r.GateDecision("card", false)
	r.GateDecision("card", false)
	r.CatalogLoaded("fallback")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.linksGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.gateDecisions.WithLabelValues("card", "offered")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.gateDecisions.WithLabelValues("card", "hidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.catalogLoads.WithLabelValues("fallback")))
}

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.LinkGenerated()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.linksGenerated))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.LinkGenerated()
		r.GateDecision("detail", true)
		r.CatalogLoaded("file")
	})
}
