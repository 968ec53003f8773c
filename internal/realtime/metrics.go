package realtime

import "github.com/prometheus/client_golang/prometheus"

var (
	liveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_live_connections",
		Help: "Number of currently registered notification stream connections",
	})

	eventsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_events_dispatched_total",
			Help: "Number of notification events handed to the dispatcher",
		},
		[]string{"type"},
	)

	eventsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "realtime_events_delivered_total",
		Help: "Number of per-connection deliveries that succeeded",
	})

	connectionsReaped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "realtime_connections_reaped_total",
		Help: "Number of connections removed after a failed write",
	})
)

func init() {
	prometheus.MustRegister(liveConnections)
	prometheus.MustRegister(eventsDispatched)
	prometheus.MustRegister(eventsDelivered)
	prometheus.MustRegister(connectionsReaped)
}
