package engine

import (
	"github.com/shopspring/decimal"

	"github.com/jbradford55/StockTradeProj/models"
)

// OrderResolver reports whether an OrderRef points at an order known to the
// engine. Sentinel refs never resolve.
type OrderResolver func(models.OrderRef) bool

// Ledger derives the caller's net position per symbol from the transaction
// stream. It owns the position map exclusively; queries return copies.
type Ledger struct {
	positions map[string]*models.PortfolioPosition
	resolve   OrderResolver
}

// NewLedger creates an empty ledger
func NewLedger(resolve OrderResolver) *Ledger {
	return &Ledger{
		positions: make(map[string]*models.PortfolioPosition),
		resolve:   resolve,
	}
}

// Apply folds one transaction into the ledger.
//
// The buy leg is locally owned when the buy ref resolves to a known order, or
// unconditionally when the sell side is the AUTO sentinel (a synthetic buy
// fill). The sell leg is locally owned when the sell ref resolves, or
// unconditionally when the buy side is the MARKET sentinel. An internal cross
// owns both legs; the buy leg applies first so recomputing the ledger from
// the log always reproduces live state.
func (l *Ledger) Apply(tx *models.Transaction) {
	buyLocal := tx.SellOrderRef == models.RefAuto || l.resolve(tx.BuyOrderRef)
	sellLocal := tx.BuyOrderRef == models.RefMarket || l.resolve(tx.SellOrderRef)

	if buyLocal {
		pos, ok := l.positions[tx.Symbol]
		if !ok {
			pos = models.NewPortfolioPosition(tx.Symbol)
			l.positions[tx.Symbol] = pos
		}
		pos.AddShares(tx.Quantity, tx.Price)
	}

	removed := false
	if sellLocal {
		if pos, ok := l.positions[tx.Symbol]; ok {
			pos.ReduceShares(tx.Quantity)
			if pos.Shares.LessThanOrEqual(decimal.Zero) {
				delete(l.positions, tx.Symbol)
				removed = true
			}
		}
	}

	if !removed {
		if pos, ok := l.positions[tx.Symbol]; ok {
			pos.MarkPrice = tx.Price
		}
	}
}

// Shares returns the held share count for a symbol, zero when no position
// exists.
func (l *Ledger) Shares(symbol string) decimal.Decimal {
	if pos, ok := l.positions[symbol]; ok {
		return pos.Shares
	}
	return decimal.Zero
}

// Positions returns a copy of every live position keyed by symbol
func (l *Ledger) Positions() map[string]models.PortfolioPosition {
	out := make(map[string]models.PortfolioPosition, len(l.positions))
	for symbol, pos := range l.positions {
		out[symbol] = pos.Clone()
	}
	return out
}

// TotalValue returns the sum of shares * markPrice across all positions
func (l *Ledger) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range l.positions {
		total = total.Add(pos.MarketValue())
	}
	return total
}
