package httpapi

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// Outcome label values of scentquiz_recommendations_total
const (
	outcomeMatch   = "match"
	outcomeNoMatch = "no_match"
	outcomeError   = "error"
)

// Metrics holds the server's Prometheus collectors. They live on their own
// registry so several servers can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	Recommendations       *prometheus.CounterVec
	MatchDuration         *prometheus.HistogramVec
	HistoryAppendFailures prometheus.Counter
}

// NewMetrics registers the collectors. activeSessions reports the live session count.
func NewMetrics(activeSessions func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		Recommendations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scentquiz_recommendations_total",
				Help: "Quiz runs that reached the results step",
			},
			[]string{"strategy", "outcome"},
		),
		MatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scentquiz_match_duration_seconds",
				Help:    "Time spent ranking the catalog against a query",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"strategy"},
		),
		HistoryAppendFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "scentquiz_history_append_failures_total",
				Help: "History entries that could not be written",
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "scentquiz_sessions_active",
			Help: "Quiz sessions currently held in memory",
		},
		activeSessions,
	)
	return m
}

// instrumentedMatcher times every Match call and counts its outcome
type instrumentedMatcher struct {
	ports.Matcher
	metrics *Metrics
}

func (m *Metrics) wrapMatcher(inner ports.Matcher) ports.Matcher {
	return &instrumentedMatcher{Matcher: inner, metrics: m}
}

func (im *instrumentedMatcher) Match(q domain.PreferenceQuery) ([]domain.RankedResult, error) {
	strategy := im.Strategy()
	start := time.Now()
	results, err := im.Matcher.Match(q)
	im.metrics.MatchDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())

	outcome := outcomeMatch
	switch {
	case err != nil:
		outcome = outcomeError
	case len(results) == 0:
		outcome = outcomeNoMatch
	}
	im.metrics.Recommendations.WithLabelValues(strategy, outcome).Inc()
	return results, err
}

// instrumentedHistory counts failed appends
type instrumentedHistory struct {
	ports.HistoryStore
	metrics *Metrics
}

func (m *Metrics) wrapHistory(inner ports.HistoryStore) ports.HistoryStore {
	if inner == nil {
		return nil
	}
	return &instrumentedHistory{HistoryStore: inner, metrics: m}
}

func (ih *instrumentedHistory) AppendHistory(ctx context.Context, userID string, q domain.PreferenceQuery, recommended []domain.ItemRef) error {
	err := ih.HistoryStore.AppendHistory(ctx, userID, q, recommended)
	if err != nil {
		ih.metrics.HistoryAppendFailures.Inc()
	}
	return err
}
