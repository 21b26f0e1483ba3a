package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeAPIError       = "api_error"
	OutcomeDecodeError    = "decode_error"
	OutcomeTransportError = "transport_error"
)

var (
	// API calls
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giantbomb_requests_total",
		Help: "Total number of API requests by resource and outcome.",
	}, []string{"resource", "outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "giantbomb_request_duration_seconds",
		Help:    "Duration of API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})

	BreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "giantbomb_circuit_breaker_state",
		Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open).",
	}, []string{"name"})

	// Local catalog
	CatalogRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "giantbomb_catalog_records",
		Help: "Number of records stored in the local catalog by resource.",
	}, []string{"resource"})
)

// RecordRequest counts one request and observes its duration.
func RecordRequest(resource, outcome string, start time.Time) {
	RequestsTotal.WithLabelValues(resource, outcome).Inc()
	RequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}

// UpdateCatalogMetrics refreshes the catalog gauges from the database.
func UpdateCatalogMetrics(db *sql.DB) error {
	rows, err := db.Query("SELECT resource, COUNT(*) FROM records GROUP BY resource")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	CatalogRecords.Reset()
	for rows.Next() {
		var resource string
		var count int
		if err := rows.Scan(&resource, &count); err != nil {
			return err
		}
		CatalogRecords.WithLabelValues(resource).Set(float64(count))
	}
	return rows.Err()
}
