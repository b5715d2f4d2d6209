package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "rlnc"
)

var (
	// CodersBuilt counts coders constructed by factories.
	CodersBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "factory",
			Name:      "coders_built_total",
			Help:      "Total number of coders constructed",
		},
		[]string{"stack"},
	)

	// PoolBuilds counts coders handed out by pools.
	PoolBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "builds_total",
			Help:      "Total number of coders handed out by pools",
		},
		[]string{"stack", "source"}, // source: new/reused
	)

	// PoolReleases counts coders returned to pools.
	PoolReleases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "releases_total",
			Help:      "Total number of coders returned to pools",
		},
		[]string{"stack"},
	)

	// PoolLeaks counts handles collected without Release.
	PoolLeaks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "leaked_handles_total",
			Help:      "Total number of pool handles dropped without Release",
		},
		[]string{"stack"},
	)

	// PoolIdle tracks the free list length of each pool.
	PoolIdle = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "idle_coders",
			Help:      "Number of coders waiting in a pool free list",
		},
		[]string{"stack"},
	)
)

// Observer feeds factory and pool events into the collectors above.
type Observer struct{}

func (Observer) CoderBuilt(stack string) {
	CodersBuilt.WithLabelValues(stack).Inc()
}

func (Observer) CoderLent(stack string, reused bool) {
	source := "new"
	if reused {
		source = "reused"
	}
	PoolBuilds.WithLabelValues(stack, source).Inc()
}

func (Observer) CoderReturned(stack string) {
	PoolReleases.WithLabelValues(stack).Inc()
}

func (Observer) HandleLeaked(stack string) {
	PoolLeaks.WithLabelValues(stack).Inc()
}

func (Observer) IdleChanged(stack string, idle int) {
	PoolIdle.WithLabelValues(stack).Set(float64(idle))
}

// Label renders a numeric label value; used for per-field stack names.
func Label(prefix string, bits uint8) string {
	return prefix + "_gf" + strconv.Itoa(1<<bits)
}
