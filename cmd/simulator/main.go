package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jbradford55/StockTradeProj/engine"
	"github.com/jbradford55/StockTradeProj/logging"
	"github.com/jbradford55/StockTradeProj/models"
	"github.com/jbradford55/StockTradeProj/simulator"
)

type config struct {
	LogLevel     string
	MetricsAddr  string
	OrdersPerSec float64
	PollInterval time.Duration
	Symbols      []string
}

func loadConfig() config {
	return config{
		LogLevel:     getEnvAsString("LOG_LEVEL", "info"),
		MetricsAddr:  getEnvAsString("METRICS_ADDR", ":9100"),
		OrdersPerSec: getEnvAsFloat("ORDERS_PER_SEC", 2),
		PollInterval: time.Duration(getEnvAsInt("POLL_INTERVAL_MS", 2000)) * time.Millisecond,
		Symbols:      splitSymbols(getEnvAsString("SYMBOLS", "")),
	}
}

func getEnvAsString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitSymbols(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// tapeListener counts broadcast batches; stands in for a UI trade tape
type tapeListener struct {
	batches      uint64
	transactions uint64
}

func (t *tapeListener) OnTransactions(batch []models.Transaction) {
	t.batches++
	t.transactions += uint64(len(batch))
}

func main() {
	cfg := loadConfig()
	logger := logging.InitLogger(cfg.LogLevel)

	eng := engine.NewEngine()

	tape := &tapeListener{}
	eng.Subscribe(tape)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.WithError(err).Error("metrics server stopped")
		}
	}()

	genCfg := simulator.DefaultConfig()
	genCfg.Rate = rate.Limit(cfg.OrdersPerSec)
	if len(cfg.Symbols) > 0 {
		genCfg.Symbols = cfg.Symbols
	}
	gen := simulator.NewGenerator(eng, genCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := gen.Run(ctx); err != nil {
			logger.WithError(err).Error("traffic generator stopped")
		}
	}()

	logger.WithFields(logrus.Fields{
		"event":        logging.EventEngineStarted,
		"metrics_addr": cfg.MetricsAddr,
		"rate":         cfg.OrdersPerSec,
		"symbols":      genCfg.Symbols,
	}).Info("Engine started")

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stats := gen.Stats()
			logger.WithFields(logrus.Fields{
				"submitted":     stats.Submitted,
				"buy_fallbacks": stats.BuyFallbacks,
				"rejected":      stats.Rejected,
				"batches":       tape.batches,
				"transactions":  tape.transactions,
			}).Info("Shutting down")
			return
		case <-ticker.C:
			portfolio := eng.Portfolio()
			recent := eng.RecentTransactions(5)

			fields := logrus.Fields{
				"positions":   len(portfolio.Positions),
				"total_value": portfolio.TotalValue.InexactFloat64(),
				"symbols":     len(eng.Symbols()),
			}
			if len(recent) > 0 {
				fields["last_price"] = recent[0].Price.InexactFloat64()
				fields["last_symbol"] = recent[0].Symbol
			}
			logger.WithFields(fields).Info("Portfolio poll")
		}
	}
}
