package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Increment(t *testing.T) {

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Increment("reads", Compared)
	m.Increment("reads", Compared)
	m.Increment("reads", Missing)
	m.Increment("clusters", Skipped)

	assert.Equal(t, 2, m.Count("reads", Compared))
	assert.Equal(t, 1, m.Count("reads", Missing))
	assert.Equal(t, 1, m.Count("clusters", Skipped))
	assert.Equal(t, 0, m.Count("clusters", Failed))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Comparisons.WithLabelValues("reads", string(Compared))))

	m.Observe("reads", time.Now())
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 2)
}

func TestMetrics_Unregistered(t *testing.T) {
	m := NewMetrics(nil)
	m.Increment("reads", Failed)
	assert.Equal(t, 1, m.Count("reads", Failed))
}
