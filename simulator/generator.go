package simulator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/jbradford55/StockTradeProj/engine"
	"github.com/jbradford55/StockTradeProj/models"
)

// Config controls the random traffic generator
type Config struct {
	Symbols     []string
	MinPrice    float64
	MaxPrice    float64
	MaxQuantity int64
	Rate        rate.Limit // submissions per second
	Burst       int
	Seed        int64 // 0 means seed from the clock
}

// DefaultConfig returns a small demo universe
func DefaultConfig() Config {
	return Config{
		Symbols:     []string{"AAPL", "MSFT", "TSLA", "GOOG", "AMZN", "NVDA"},
		MinPrice:    20,
		MaxPrice:    500,
		MaxQuantity: 100,
		Rate:        rate.Limit(2),
		Burst:       1,
	}
}

// Stats counts generator activity
type Stats struct {
	Submitted    uint64
	BuyFallbacks uint64
	Rejected     uint64
}

// Generator submits randomized orders through the engine's public surface.
// When a sell is rejected for insufficient shares it falls back to submitting
// a buy with the same parameters.
type Generator struct {
	engine  *engine.Engine
	cfg     Config
	rng     *rand.Rand
	limiter *rate.Limiter
	stats   Stats
}

// NewGenerator creates a generator over an engine instance
func NewGenerator(e *engine.Engine, cfg Config) *Generator {
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = DefaultConfig().Symbols
	}
	if cfg.MaxPrice <= cfg.MinPrice {
		cfg.MinPrice = DefaultConfig().MinPrice
		cfg.MaxPrice = DefaultConfig().MaxPrice
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = DefaultConfig().MaxQuantity
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultConfig().Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		engine:  e,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		limiter: rate.NewLimiter(cfg.Rate, cfg.Burst),
	}
}

// Run submits orders at the configured rate until the context is cancelled
func (g *Generator) Run(ctx context.Context) error {
	for {
		if err := g.limiter.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		g.SubmitOne()
	}
}

// SubmitOne submits a single randomized order and returns the engine result
func (g *Generator) SubmitOne() (*models.Order, error) {
	symbol := g.cfg.Symbols[g.rng.Intn(len(g.cfg.Symbols))]

	side := models.OrderSideBuy
	if g.rng.Intn(2) == 1 {
		side = models.OrderSideSell
	}

	price := decimal.NewFromFloat(g.cfg.MinPrice + g.rng.Float64()*(g.cfg.MaxPrice-g.cfg.MinPrice)).Round(2)
	quantity := decimal.NewFromInt(g.rng.Int63n(g.cfg.MaxQuantity) + 1)

	order, err := g.engine.Submit(side, symbol, quantity, price)
	if errors.Is(err, engine.ErrInsufficientShares) {
		g.stats.BuyFallbacks++
		order, err = g.engine.Submit(models.OrderSideBuy, symbol, quantity, price)
	}

	if err != nil {
		g.stats.Rejected++
		return nil, err
	}
	g.stats.Submitted++
	return order, nil
}

// Stats returns a copy of the activity counters
func (g *Generator) Stats() Stats {
	return g.stats
}
