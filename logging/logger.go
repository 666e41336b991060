package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// InitLogger configures the global structured logger
func InitLogger(level string) *logrus.Logger {
	log = logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	log.WithFields(logrus.Fields{
		"event": "logger_initialized",
		"level": log.Level.String(),
	}).Info("Structured logging initialized")

	return log
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if log == nil {
		return InitLogger("info")
	}
	return log
}

// Event types as constants
const (
	EventOrderSubmitted = "order_submitted"
	EventOrderRejected  = "order_rejected"
	EventOrderRested    = "order_rested"
	EventFillRecorded   = "fill_recorded"
	EventSyntheticFill  = "synthetic_fill"
	EventEngineStarted  = "engine_started"
)

// LogOrderSubmitted logs the outcome of an accepted submission
func LogOrderSubmitted(orderID, symbol, side string, price, quantity float64, status string, fills int) {
	GetLogger().WithFields(logrus.Fields{
		"event":    EventOrderSubmitted,
		"order_id": orderID,
		"symbol":   symbol,
		"side":     side,
		"price":    price,
		"quantity": quantity,
		"status":   status,
		"fills":    fills,
	}).Info("Order submitted")
}

// LogOrderRejected logs a rejected submission
func LogOrderRejected(symbol, side, reason string) {
	GetLogger().WithFields(logrus.Fields{
		"event":  EventOrderRejected,
		"symbol": symbol,
		"side":   side,
		"reason": reason,
	}).Warn("Order rejected")
}

// LogFill logs one recorded transaction
func LogFill(txID, symbol, buyRef, sellRef string, price, quantity float64, synthetic bool) {
	fields := logrus.Fields{
		"event":          EventFillRecorded,
		"transaction_id": txID,
		"symbol":         symbol,
		"buy_order_ref":  buyRef,
		"sell_order_ref": sellRef,
		"price":          price,
		"quantity":       quantity,
	}
	if synthetic {
		fields["event"] = EventSyntheticFill
	}
	GetLogger().WithFields(fields).Debug("Transaction recorded")
}
