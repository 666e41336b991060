package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewOrderDefaults(t *testing.T) {
	order := NewOrder("AAPL", OrderSideBuy, decimal.NewFromInt(50), decimal.NewFromInt(10))

	if order.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %s", order.Symbol)
	}
	if order.Status != OrderStatusOpen {
		t.Errorf("Expected status open, got %s", order.Status)
	}
	if !order.FilledQuantity.IsZero() {
		t.Errorf("Expected zero filled quantity, got %s", order.FilledQuantity)
	}
	if !order.RemainingQuantity().Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected remaining 10, got %s", order.RemainingQuantity())
	}
}

func TestOrderIsValid(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		side     OrderSide
		price    string
		quantity string
		want     bool
	}{
		{"valid buy", "AAPL", OrderSideBuy, "50", "10", true},
		{"valid sell", "MSFT", OrderSideSell, "0.01", "1", true},
		{"blank symbol", "   ", OrderSideBuy, "50", "10", false},
		{"empty symbol", "", OrderSideBuy, "50", "10", false},
		{"zero quantity", "AAPL", OrderSideBuy, "50", "0", false},
		{"negative quantity", "AAPL", OrderSideBuy, "50", "-1", false},
		{"zero price", "AAPL", OrderSideBuy, "0", "10", false},
		{"negative price", "AAPL", OrderSideSell, "-5", "10", false},
		{"bad side", "AAPL", OrderSide("hold"), "50", "10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrder(tt.symbol, tt.side, decimal.RequireFromString(tt.price), decimal.RequireFromString(tt.quantity))
			if got := order.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderFillTransitions(t *testing.T) {
	order := NewOrder("AAPL", OrderSideBuy, decimal.NewFromInt(50), decimal.NewFromInt(10))

	order.Fill(decimal.NewFromInt(4))
	if order.Status != OrderStatusPartiallyFilled {
		t.Errorf("Expected partially_filled, got %s", order.Status)
	}
	if !order.RemainingQuantity().Equal(decimal.NewFromInt(6)) {
		t.Errorf("Expected remaining 6, got %s", order.RemainingQuantity())
	}
	if !order.CanBeFilled() {
		t.Error("Partially filled order should still be fillable")
	}

	order.Fill(decimal.NewFromInt(6))
	if order.Status != OrderStatusFilled {
		t.Errorf("Expected filled, got %s", order.Status)
	}
	if !order.RemainingQuantity().IsZero() {
		t.Errorf("Expected remaining 0, got %s", order.RemainingQuantity())
	}
	if order.CanBeFilled() {
		t.Error("Filled order should not be fillable")
	}
}

func TestOrderCancel(t *testing.T) {
	order := NewOrder("AAPL", OrderSideSell, decimal.NewFromInt(50), decimal.NewFromInt(10))
	order.Cancel()

	if order.Status != OrderStatusCancelled {
		t.Errorf("Expected cancelled, got %s", order.Status)
	}
	if order.CanBeFilled() {
		t.Error("Cancelled order should not be fillable")
	}
}

func TestOrderCloneIsIndependent(t *testing.T) {
	order := NewOrder("AAPL", OrderSideBuy, decimal.NewFromInt(50), decimal.NewFromInt(10))
	clone := order.Clone()

	clone.Fill(decimal.NewFromInt(10))

	if order.Status != OrderStatusOpen {
		t.Errorf("Mutating a clone changed the original: %s", order.Status)
	}
	if !order.FilledQuantity.IsZero() {
		t.Errorf("Mutating a clone changed the original fill: %s", order.FilledQuantity)
	}
}

func TestOrderRefSentinels(t *testing.T) {
	if !RefMarket.IsSentinel() || !RefAuto.IsSentinel() {
		t.Error("MARKET and AUTO must be sentinels")
	}

	order := NewOrder("AAPL", OrderSideBuy, decimal.NewFromInt(50), decimal.NewFromInt(10))
	ref := RefFromOrderID(order.ID)
	if ref.IsSentinel() {
		t.Error("Real order ref must not be a sentinel")
	}

	id, ok := ref.OrderID()
	if !ok || id != order.ID {
		t.Errorf("Expected ref to resolve to %s, got %s (ok=%v)", order.ID, id, ok)
	}

	if _, ok := RefAuto.OrderID(); ok {
		t.Error("AUTO must not resolve to an order id")
	}
}
