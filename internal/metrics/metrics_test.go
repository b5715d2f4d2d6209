package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestObserverFeedsCollectors(t *testing.T) {
	const stack = "metrics_test"
	var o Observer

	o.CoderBuilt(stack)
	o.CoderBuilt(stack)
	require.Equal(t, 2.0, counterValue(t, CodersBuilt.WithLabelValues(stack)))

	o.CoderLent(stack, false)
	o.CoderLent(stack, true)
	o.CoderLent(stack, true)
	require.Equal(t, 1.0, counterValue(t, PoolBuilds.WithLabelValues(stack, "new")))
	require.Equal(t, 2.0, counterValue(t, PoolBuilds.WithLabelValues(stack, "reused")))

	o.CoderReturned(stack)
	o.CoderReturned(stack)
	o.HandleLeaked(stack)
	require.Equal(t, 2.0, counterValue(t, PoolReleases.WithLabelValues(stack)))
	require.Equal(t, 1.0, counterValue(t, PoolLeaks.WithLabelValues(stack)))

	o.IdleChanged(stack, 3)
	require.Equal(t, 3.0, gaugeValue(t, PoolIdle.WithLabelValues(stack)))
	o.IdleChanged(stack, 0)
	require.Equal(t, 0.0, gaugeValue(t, PoolIdle.WithLabelValues(stack)))
}

func TestLabel(t *testing.T) {
	require.Equal(t, "symbol_id_gf2", Label("symbol_id", 1))
	require.Equal(t, "generator_gf16", Label("generator", 4))
	require.Equal(t, "generator_gf256", Label("generator", 8))
	require.Equal(t, "symbol_id_gf65536", Label("symbol_id", 16))
}
