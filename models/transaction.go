package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRef identifies one leg of a transaction: either the id of a real order
// or one of the sentinel counterparties.
type OrderRef string

const (
	// RefMarket marks an external, unmodeled counterparty (synthetic sell fill).
	RefMarket OrderRef = "MARKET"
	// RefAuto marks a synthetic liquidity fill on the buy side.
	RefAuto OrderRef = "AUTO"
)

// RefFromOrderID builds an OrderRef pointing at a real order.
func RefFromOrderID(id uuid.UUID) OrderRef {
	return OrderRef(id.String())
}

// IsSentinel reports whether the ref is one of the synthetic counterparties.
func (r OrderRef) IsSentinel() bool {
	return r == RefMarket || r == RefAuto
}

// OrderID resolves the ref back to an order id. ok is false for sentinels.
func (r OrderRef) OrderID() (uuid.UUID, bool) {
	if r.IsSentinel() {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(string(r))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Transaction records one executed fill. Transactions are immutable once
// created and live in an append-only log ordered by creation sequence.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	BuyOrderRef  OrderRef        `json:"buy_order_ref"`
	SellOrderRef OrderRef        `json:"sell_order_ref"`
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// NewTransaction creates a new transaction
func NewTransaction(buyRef, sellRef OrderRef, symbol string, quantity, price decimal.Decimal) *Transaction {
	return &Transaction{
		ID:           uuid.New(),
		BuyOrderRef:  buyRef,
		SellOrderRef: sellRef,
		Symbol:       symbol,
		Quantity:     quantity,
		Price:        price,
		OccurredAt:   time.Now(),
	}
}

// IsSynthetic reports whether either leg is a sentinel counterparty.
func (t *Transaction) IsSynthetic() bool {
	return t.BuyOrderRef.IsSentinel() || t.SellOrderRef.IsSentinel()
}
