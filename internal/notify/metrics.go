package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "realty",
		Subsystem: "notify",
		Name:      "tasks_total",
		Help:      "Side-effect tasks processed by kind and result.",
	}, []string{"kind", "result"})

	droppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "realty",
		Subsystem: "notify",
		Name:      "dropped_total",
		Help:      "Side-effect tasks dropped because the queue was full or closed.",
	}, []string{"kind"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "realty",
		Subsystem: "notify",
		Name:      "queue_depth",
		Help:      "Side-effect tasks waiting for a worker.",
	})
)
