package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/jbradford55/StockTradeProj/models"
)

// setResolver resolves refs against a fixed set of known order ids.
func setResolver(ids ...uuid.UUID) OrderResolver {
	known := make(map[models.OrderRef]struct{}, len(ids))
	for _, id := range ids {
		known[models.RefFromOrderID(id)] = struct{}{}
	}
	return func(ref models.OrderRef) bool {
		_, ok := known[ref]
		return ok
	}
}

func TestLedgerBuyCreatesAndAverages(t *testing.T) {
	buy1 := uuid.New()
	buy2 := uuid.New()
	l := NewLedger(setResolver(buy1, buy2))

	l.Apply(models.NewTransaction(models.RefFromOrderID(buy1), models.RefAuto, "AAPL", d("10"), d("50")))
	l.Apply(models.NewTransaction(models.RefFromOrderID(buy2), models.RefAuto, "AAPL", d("10"), d("60")))

	pos, ok := l.Positions()["AAPL"]
	require.True(t, ok)
	assert.True(t, pos.Shares.Equal(d("20")))
	assert.True(t, pos.AverageCost.Equal(d("55")), "weighted average of 50 and 60")
	assert.True(t, pos.MarkPrice.Equal(d("60")), "mark price is the last transaction price")
	assert.True(t, l.TotalValue().Equal(d("1200")))
}

func TestLedgerSellLeavesAverageCostAlone(t *testing.T) {
	buy := uuid.New()
	sell := uuid.New()
	l := NewLedger(setResolver(buy, sell))

	l.Apply(models.NewTransaction(models.RefFromOrderID(buy), models.RefAuto, "MSFT", d("10"), d("40")))
	l.Apply(models.NewTransaction(models.RefMarket, models.RefFromOrderID(sell), "MSFT", d("4"), d("70")))

	pos := l.Positions()["MSFT"]
	assert.True(t, pos.Shares.Equal(d("6")))
	assert.True(t, pos.AverageCost.Equal(d("40")))
	assert.True(t, pos.MarkPrice.Equal(d("70")))
}

func TestLedgerPositionRemovedAtZero(t *testing.T) {
	buy := uuid.New()
	sell := uuid.New()
	l := NewLedger(setResolver(buy, sell))

	l.Apply(models.NewTransaction(models.RefFromOrderID(buy), models.RefAuto, "TSLA", d("5"), d("30")))
	l.Apply(models.NewTransaction(models.RefMarket, models.RefFromOrderID(sell), "TSLA", d("5"), d("28")))

	_, ok := l.Positions()["TSLA"]
	assert.False(t, ok, "fully sold position must be removed, not zeroed")
	assert.True(t, l.Shares("TSLA").IsZero())
	assert.True(t, l.TotalValue().IsZero())
}

func TestLedgerInternalCrossAppliesBothLegs(t *testing.T) {
	buy1 := uuid.New()
	buy2 := uuid.New()
	sell := uuid.New()
	l := NewLedger(setResolver(buy1, buy2, sell))

	l.Apply(models.NewTransaction(models.RefFromOrderID(buy1), models.RefAuto, "GOOG", d("10"), d("100")))

	// Both refs resolve: the buy leg adds 10 at 110, the sell leg removes 10.
	// Net shares are unchanged, average cost reflects the buy leg.
	l.Apply(models.NewTransaction(models.RefFromOrderID(buy2), models.RefFromOrderID(sell), "GOOG", d("10"), d("110")))

	pos, ok := l.Positions()["GOOG"]
	require.True(t, ok)
	assert.True(t, pos.Shares.Equal(d("10")))
	assert.True(t, pos.AverageCost.Equal(d("105")))
	assert.True(t, pos.MarkPrice.Equal(d("110")))
}

func TestLedgerIgnoresForeignLegs(t *testing.T) {
	l := NewLedger(setResolver())

	// Neither ref resolves and neither sentinel matches: nothing to book.
	l.Apply(models.NewTransaction(models.RefFromOrderID(uuid.New()), models.RefFromOrderID(uuid.New()), "AMZN", d("5"), d("80")))

	assert.Empty(t, l.Positions())
	assert.True(t, l.Shares("AMZN").IsZero())
}

func TestLedgerPositionsReturnsCopies(t *testing.T) {
	buy := uuid.New()
	l := NewLedger(setResolver(buy))
	l.Apply(models.NewTransaction(models.RefFromOrderID(buy), models.RefAuto, "NVDA", d("3"), d("90")))

	snapshot := l.Positions()
	entry := snapshot["NVDA"]
	entry.Shares = d("9999")
	snapshot["NVDA"] = entry

	assert.True(t, l.Shares("NVDA").Equal(d("3")), "mutating a snapshot must not reach the ledger")
}
