package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSide represents the side of an order (buy or sell)
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderStatus represents the current status of an order
type OrderStatus string

const (
	OrderStatusOpen            OrderStatus = "open"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// Order represents a trading order in the system.
// Price and CreatedAt never change after creation; only FilledQuantity and
// Status are mutated, and only by the matching engine. A Filled or Cancelled
// order is never mutated again.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	Symbol         string          `json:"symbol"`
	Side           OrderSide       `json:"side"`
	Price          decimal.Decimal `json:"price"`
	Quantity       decimal.Decimal `json:"quantity"`
	FilledQuantity decimal.Decimal `json:"filled_quantity"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewOrder creates a new Order instance with default values
func NewOrder(symbol string, side OrderSide, price, quantity decimal.Decimal) *Order {
	now := time.Now()
	return &Order{
		ID:             uuid.New(),
		Symbol:         symbol,
		Side:           side,
		Price:          price,
		Quantity:       quantity,
		FilledQuantity: decimal.Zero,
		Status:         OrderStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsValid validates the order fields
func (o *Order) IsValid() bool {
	if strings.TrimSpace(o.Symbol) == "" {
		return false
	}

	if o.Side != OrderSideBuy && o.Side != OrderSideSell {
		return false
	}

	if o.Quantity.LessThanOrEqual(decimal.Zero) {
		return false
	}

	if o.Price.LessThanOrEqual(decimal.Zero) {
		return false
	}

	if o.FilledQuantity.GreaterThan(o.Quantity) {
		return false
	}

	return true
}

// RemainingQuantity returns the unfilled quantity of the order
func (o *Order) RemainingQuantity() decimal.Decimal {
	return o.Quantity.Sub(o.FilledQuantity)
}

// IsFilled checks if the order is completely filled
func (o *Order) IsFilled() bool {
	return o.FilledQuantity.Equal(o.Quantity)
}

// IsPartiallyFilled checks if the order is partially filled
func (o *Order) IsPartiallyFilled() bool {
	return o.FilledQuantity.GreaterThan(decimal.Zero) && o.FilledQuantity.LessThan(o.Quantity)
}

// CanBeFilled checks if the order can still participate in matching
func (o *Order) CanBeFilled() bool {
	return o.Status == OrderStatusOpen || o.Status == OrderStatusPartiallyFilled
}

// Fill updates the order with a fill amount
func (o *Order) Fill(quantity decimal.Decimal) {
	o.FilledQuantity = o.FilledQuantity.Add(quantity)
	o.UpdatedAt = time.Now()

	if o.IsFilled() {
		o.Status = OrderStatusFilled
	} else if o.IsPartiallyFilled() {
		o.Status = OrderStatusPartiallyFilled
	}
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
}

// Clone returns a copy of the order. Query results hand out clones so callers
// cannot mutate engine-internal order state.
func (o *Order) Clone() *Order {
	c := *o
	return &c
}
