package models

import "github.com/shopspring/decimal"

// PortfolioPosition is the net holding in one symbol. A position exists only
// while Shares > 0; the ledger removes it the instant shares reach zero.
//
// AverageCost is a quantity-weighted running average updated only by buys.
// Sells reduce Shares but never touch AverageCost. MarkPrice tracks the most
// recent transaction price for the symbol, buy or sell.
type PortfolioPosition struct {
	Symbol      string          `json:"symbol"`
	Shares      decimal.Decimal `json:"shares"`
	AverageCost decimal.Decimal `json:"average_cost"`
	MarkPrice   decimal.Decimal `json:"mark_price"`
}

// NewPortfolioPosition creates an empty position for a symbol
func NewPortfolioPosition(symbol string) *PortfolioPosition {
	return &PortfolioPosition{
		Symbol:      symbol,
		Shares:      decimal.Zero,
		AverageCost: decimal.Zero,
		MarkPrice:   decimal.Zero,
	}
}

// AddShares applies a buy fill, folding the fill price into the weighted
// average cost.
func (p *PortfolioPosition) AddShares(quantity, price decimal.Decimal) {
	newShares := p.Shares.Add(quantity)
	cost := p.Shares.Mul(p.AverageCost).Add(quantity.Mul(price))
	p.AverageCost = cost.Div(newShares)
	p.Shares = newShares
}

// ReduceShares applies a sell fill. AverageCost is left untouched.
func (p *PortfolioPosition) ReduceShares(quantity decimal.Decimal) {
	p.Shares = p.Shares.Sub(quantity)
}

// MarketValue returns Shares * MarkPrice.
func (p *PortfolioPosition) MarketValue() decimal.Decimal {
	return p.Shares.Mul(p.MarkPrice)
}

// Clone returns a copy of the position for query snapshots.
func (p *PortfolioPosition) Clone() PortfolioPosition {
	return *p
}
