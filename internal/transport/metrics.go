package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	durableCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collabchat_durable_calls_total",
		Help: "Durable-channel calls by operation and outcome.",
	}, []string{"op", "outcome"})

	pushEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collabchat_push_events_total",
		Help: "Push-channel events received by tag.",
	}, []string{"tag"})
)

func observeCall(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	durableCalls.WithLabelValues(op, outcome).Inc()
}
