package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter: Total orders accepted by the engine
	OrdersSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Total number of orders accepted by the matching engine",
		},
		[]string{"symbol", "side"},
	)

	// Counter: Total orders rejected by validation
	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of orders rejected before any state mutation",
		},
		[]string{"reason"},
	)

	// Counter: Total transactions recorded, split by liquidity source
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_total",
			Help: "Total number of transactions recorded (book crossings and synthetic fills)",
		},
		[]string{"symbol", "liquidity"},
	)

	// Counter: Total volume traded
	TradedVolumeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traded_volume_total",
			Help: "Total share volume traded",
		},
		[]string{"symbol"},
	)

	// Gauge: Fillable orders resting per book side
	OrderbookDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orderbook_depth",
			Help: "Current number of fillable orders resting in the book",
		},
		[]string{"symbol", "side"},
	)

	// Gauge: Portfolio mark-to-market value
	PortfolioValue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_value",
			Help: "Sum of shares times mark price across all positions",
		},
	)

	// Gauge: Registered symbols out of the fixed 1024 slots
	SymbolsRegistered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "symbols_registered",
			Help: "Number of ticker symbols assigned a registry slot",
		},
	)

	// Histogram: Submission processing latency
	SubmitLatencySeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "submit_latency_seconds",
			Help:    "Time taken to process one order submission",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
		},
	)
)

// RecordOrderSubmitted increments the orders_submitted_total counter
func RecordOrderSubmitted(symbol, side string) {
	OrdersSubmittedTotal.WithLabelValues(symbol, side).Inc()
}

// RecordOrderRejected increments the orders_rejected_total counter
func RecordOrderRejected(reason string) {
	OrdersRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordTransaction records one fill and its volume
func RecordTransaction(symbol, liquidity string, quantity float64) {
	TransactionsTotal.WithLabelValues(symbol, liquidity).Inc()
	TradedVolumeTotal.WithLabelValues(symbol).Add(quantity)
}

// UpdateOrderbookDepth updates the resting-order depth gauge for one side
func UpdateOrderbookDepth(symbol, side string, depth float64) {
	OrderbookDepth.WithLabelValues(symbol, side).Set(depth)
}

// UpdatePortfolioValue updates the mark-to-market portfolio gauge
func UpdatePortfolioValue(value float64) {
	PortfolioValue.Set(value)
}

// UpdateSymbolsRegistered updates the registry occupancy gauge
func UpdateSymbolsRegistered(count int) {
	SymbolsRegistered.Set(float64(count))
}

// ObserveSubmitLatency records the processing time of one submission
func ObserveSubmitLatency(seconds float64) {
	SubmitLatencySeconds.Observe(seconds)
}
