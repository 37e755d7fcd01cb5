package worker

import "github.com/prometheus/client_golang/prometheus"

var (
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "tick_seconds",
			Help:      "Time spent advancing the game one tick.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
	foodEaten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "food_eaten_total",
			Help:      "Food eaten across all games.",
		},
	)
	gamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "games_finished_total",
			Help:      "Games that ended with the snake dying, by cause.",
		},
		[]string{"cause"},
	)
)

func init() {
	prometheus.MustRegister(tickDuration, foodEaten, gamesFinished)
}
