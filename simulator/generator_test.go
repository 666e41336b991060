package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbradford55/StockTradeProj/engine"
)

func TestGeneratorEverySubmissionSucceeds(t *testing.T) {
	e := engine.NewEngine()
	cfg := DefaultConfig()
	cfg.Seed = 42
	gen := NewGenerator(e, cfg)

	const n = 200
	for i := 0; i < n; i++ {
		order, err := gen.SubmitOne()
		require.NoError(t, err, "submission %d", i)
		require.NotNil(t, order)
	}

	stats := gen.Stats()
	assert.Equal(t, uint64(n), stats.Submitted)
	assert.Zero(t, stats.Rejected, "insufficient-share sells fall back to buys")

	// Every submission produced at least one transaction: a cross, or the
	// synthetic fill when the book had nothing to offer.
	assert.GreaterOrEqual(t, len(e.RecentTransactions(10*n)), n)
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	run := func() []string {
		e := engine.NewEngine()
		cfg := DefaultConfig()
		cfg.Seed = 7
		gen := NewGenerator(e, cfg)
		for i := 0; i < 50; i++ {
			_, err := gen.SubmitOne()
			require.NoError(t, err)
		}
		return e.Symbols()
	}

	assert.Equal(t, run(), run(), "same seed must touch the same symbols in the same order")
}

func TestGeneratorConfigDefaults(t *testing.T) {
	e := engine.NewEngine()
	gen := NewGenerator(e, Config{})

	assert.NotEmpty(t, gen.cfg.Symbols)
	assert.Greater(t, gen.cfg.MaxPrice, gen.cfg.MinPrice)
	assert.Positive(t, gen.cfg.MaxQuantity)
	assert.Positive(t, float64(gen.cfg.Rate))
	assert.Positive(t, gen.cfg.Burst)
}
