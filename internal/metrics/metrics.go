// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EntriesAppended counts journal entries accepted by the store.
var EntriesAppended = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "purplebook",
	Subsystem: "journal",
	Name:      "entries_appended_total",
	Help:      "Total journal entries accepted.",
})

// EntriesRejected counts rejected journal entries by the first violated rule.
var EntriesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "purplebook",
	Subsystem: "journal",
	Name:      "entries_rejected_total",
	Help:      "Total journal entries rejected by validation.",
}, []string{"rule"})

// CategoryConflicts counts entries whose category disagrees with an account's history.
var CategoryConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "purplebook",
	Subsystem: "journal",
	Name:      "category_conflicts_total",
	Help:      "Total entries observed with a category conflicting with the account's history.",
})

// ReportsGenerated counts report builds by report kind.
var ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "purplebook",
	Subsystem: "report",
	Name:      "generated_total",
	Help:      "Total reports generated.",
}, []string{"report"})

// ReportImbalances counts failed balance checks by report kind.
var ReportImbalances = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "purplebook",
	Subsystem: "report",
	Name:      "imbalances_total",
	Help:      "Total reports whose balance check failed.",
}, []string{"report"})

// ReportDuration observes how long a full report pipeline takes.
var ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "purplebook",
	Subsystem: "report",
	Name:      "duration_seconds",
	Help:      "Time spent generating the full report set.",
	Buckets:   prometheus.DefBuckets,
})

// InventoryMovements counts stock movements by direction.
var InventoryMovements = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "purplebook",
	Subsystem: "inventory",
	Name:      "movements_total",
	Help:      "Total stock movements recorded.",
}, []string{"direction"})
