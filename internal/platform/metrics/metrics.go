// Package metrics exposes Prometheus collectors for rental decisions.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rental decision outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
)

// ratingLabelCap bounds the age_rating label. Ratings at or above it share
// the "21+" series. Negative ratings never reach a rental.
const ratingLabelCap = 21

// Metrics provides observability for rental creation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Decisions by outcome: accepted, rejected, invalid
	Decisions *prometheus.CounterVec

	// Violations by the age rating of the refused book, capped at "21+"
	Violations *prometheus.CounterVec

	// Identity numbers that failed to decode, by operation
	IdentityRejects *prometheus.CounterVec

	// Duration of a full rental creation
	CreateLatency prometheus.Histogram
}

// New registers the rental collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "book_rental_decisions_total",
			Help: "Rental requests by eligibility outcome",
		}, []string{"outcome"}),

		Violations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "book_rental_violations_total",
			Help: "Age rating violations by the rating of the refused book (21 and above as 21+)",
		}, []string{"age_rating"}),

		IdentityRejects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "book_rental_identity_rejects_total",
			Help: "Identity numbers rejected as malformed, by operation",
		}, []string{"operation"}),

		CreateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "book_rental_create_duration_seconds",
			Help:    "Duration of rental creation including lookups",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementDecision records a rental outcome.
func (m *Metrics) IncrementDecision(outcome string) {
	if m != nil {
		m.Decisions.WithLabelValues(outcome).Inc()
	}
}

// IncrementViolation records one refused book.
func (m *Metrics) IncrementViolation(ageRating int) {
	if m != nil {
		m.Violations.WithLabelValues(ratingLabel(ageRating)).Inc()
	}
}

func ratingLabel(ageRating int) string {
	if ageRating >= ratingLabelCap {
		return strconv.Itoa(ratingLabelCap) + "+"
	}

	return strconv.Itoa(ageRating)
}

// IncrementIdentityReject records a malformed identity number.
func (m *Metrics) IncrementIdentityReject(operation string) {
	if m != nil {
		m.IdentityRejects.WithLabelValues(operation).Inc()
	}
}

// ObserveCreateLatency records the duration of one rental creation.
func (m *Metrics) ObserveCreateLatency(d time.Duration) {
	if m != nil {
		m.CreateLatency.Observe(d.Seconds())
	}
}
