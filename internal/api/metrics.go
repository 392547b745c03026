package api

import (
	"github.com/prometheus/client_golang/prometheus"          // Metric types
	"github.com/prometheus/client_golang/prometheus/promauto" // Auto-registered metrics
)

// Counters exposed on /metrics
var (
	// adventuresCompleted counts completed adventures by outcome message tier
	adventuresCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "questbot_adventures_completed_total",
		Help: "Completed adventures by reward tier.",
	}, []string{"tier"})

	// gamblesSettled counts settled gambles by game and outcome
	gamblesSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "questbot_gambles_total",
		Help: "Settled gambles by game and outcome.",
	}, []string{"game", "outcome"})
)

// outcomeLabel maps a win flag to a counter label
func outcomeLabel(win bool) string {
	if win {
		return "win"
	}
	return "loss"
}
