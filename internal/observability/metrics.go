package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	batchTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brewcode",
			Subsystem: "batch",
			Name:      "transitions_total",
			Help:      "Batch and stage state transitions.",
		},
		[]string{"entity", "transition"},
	)
	lotsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brewcode",
			Subsystem: "inventory",
			Name:      "lots_consumed_total",
			Help:      "Inventory lots fully consumed by FIFO draws.",
		},
		[]string{"ingredient"},
	)
	consumeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brewcode",
			Subsystem: "inventory",
			Name:      "consume_failures_total",
			Help:      "Rejected consumption requests by reason.",
		},
		[]string{"reason"},
	)
	equipmentAssignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brewcode",
			Subsystem: "equipment",
			Name:      "assignments_total",
			Help:      "Equipment occupancy assignments and releases.",
		},
		[]string{"action"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(batchTransitions, lotsConsumed, consumeFailures, equipmentAssignments)
	})
}

func RecordTransition(entity, transition string) {
	RegisterMetrics()
	batchTransitions.WithLabelValues(entity, transition).Inc()
}

func RecordLotConsumed(ingredientID string) {
	RegisterMetrics()
	lotsConsumed.WithLabelValues(ingredientID).Inc()
}

func RecordConsumeFailure(reason string) {
	RegisterMetrics()
	consumeFailures.WithLabelValues(reason).Inc()
}

func RecordEquipmentAction(action string) {
	RegisterMetrics()
	equipmentAssignments.WithLabelValues(action).Inc()
}
