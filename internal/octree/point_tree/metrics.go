package point_tree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultLabel = "result"
	modeLabel   = "mode"

	insertResultOK          = "ok"
	insertResultOutOfBounds = "out_of_bounds"
	insertResultResolution  = "resolution_exhausted"
	removeModePop           = "pop"
	removeModeClear         = "clear"
	removeResultNotFound    = "not_found"
	removeResultRemoved     = "removed"
)

var (
	octreeInsertTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octree_insert_total",
		Help: "The total number of record insertions, by result.",
	}, []string{resultLabel})

	octreeSplitTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_split_total",
		Help: "The total number of leaf splits.",
	})

	octreeRemoveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octree_remove_total",
		Help: "The total number of removals, by mode and result.",
	}, []string{modeLabel, resultLabel})

	octreeBoxQueryTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_box_query_total",
		Help: "The total number of box queries run against a tree.",
	})

	octreeBoxQueryPayloads = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "octree_box_query_payloads",
		Help:    "The number of payloads returned by a box query.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	octreeRecordCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "octree_record_count",
		Help: "The number of records stored in the most recently updated tree.",
	})
)

func instrumentCountInsert(result string) {
	octreeInsertTotal.
		With(prometheus.Labels{resultLabel: result}).
		Inc()
}

func instrumentCountSplit() {
	octreeSplitTotal.Inc()
}

func instrumentCountRemove(mode string, result string) {
	octreeRemoveTotal.
		With(prometheus.Labels{modeLabel: mode, resultLabel: result}).
		Inc()
}

func instrumentBoxQuery(payloads int) {
	octreeBoxQueryTotal.Inc()
	octreeBoxQueryPayloads.Observe(float64(payloads))
}

func instrumentRecordCount(size int) {
	octreeRecordCount.Set(float64(size))
}
