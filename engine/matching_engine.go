package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jbradford55/StockTradeProj/logging"
	"github.com/jbradford55/StockTradeProj/metrics"
	"github.com/jbradford55/StockTradeProj/models"
)

const (
	liquidityBook      = "book"
	liquiditySynthetic = "synthetic"
)

// PortfolioSnapshot is the query view of the ledger
type PortfolioSnapshot struct {
	Positions  map[string]models.PortfolioPosition
	TotalValue decimal.Decimal
}

// BookSnapshot is the query view of one symbol's order book
type BookSnapshot struct {
	Bids []models.Order
	Asks []models.Order
}

// Engine is the matching engine instance. It exclusively owns the symbol
// registry, the per-symbol order books, the transaction log and the ledger;
// callers reach that state only through the methods below, which hand out
// copies.
//
// A single mutex serializes everything: a submission runs to completion,
// matching iterations and ledger updates included, before the next call
// proceeds. There is no internal queueing and no suspension point. Listener
// notification happens after the state mutation completes but still before
// Submit returns.
type Engine struct {
	mu       sync.Mutex
	registry *SymbolRegistry
	books    []*OrderBook
	orders   map[uuid.UUID]*models.Order
	ledger   *Ledger
	log      *TransactionLog
	bus      *NotificationBus
}

// NewEngine creates an engine with empty state. Construct one instance and
// pass it to every consumer; there is no hidden global.
func NewEngine() *Engine {
	e := &Engine{
		registry: NewSymbolRegistry(),
		books:    make([]*OrderBook, 0),
		orders:   make(map[uuid.UUID]*models.Order),
		log:      NewTransactionLog(),
		bus:      NewNotificationBus(),
	}
	e.ledger = NewLedger(e.knowsRef)
	return e
}

// knowsRef reports whether a transaction leg points at an order this engine
// created. Sentinels never resolve.
func (e *Engine) knowsRef(ref models.OrderRef) bool {
	id, ok := ref.OrderID()
	if !ok {
		return false
	}
	_, known := e.orders[id]
	return known
}

// Submit validates and matches one order. On success the returned order is a
// copy reflecting its post-matching state. Rejected submissions leave every
// piece of engine state untouched and return no order.
func (e *Engine) Submit(side models.OrderSide, symbol string, quantity, price decimal.Decimal) (*models.Order, error) {
	start := time.Now()

	e.mu.Lock()
	order, batch, err := e.submitLocked(side, symbol, quantity, price)
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}

	metrics.ObserveSubmitLatency(time.Since(start).Seconds())
	e.bus.Broadcast(batch)
	return order.Clone(), nil
}

func (e *Engine) submitLocked(side models.OrderSide, symbol string, quantity, price decimal.Decimal) (*models.Order, []models.Transaction, error) {
	// Validation strictly precedes any mutation, the registry included.
	if side != models.OrderSideBuy && side != models.OrderSideSell {
		metrics.RecordOrderRejected("invalid_parameters")
		logging.LogOrderRejected(symbol, string(side), "invalid side")
		return nil, nil, ErrInvalidOrderParameters
	}
	if strings.TrimSpace(symbol) == "" || quantity.LessThanOrEqual(decimal.Zero) || price.LessThanOrEqual(decimal.Zero) {
		metrics.RecordOrderRejected("invalid_parameters")
		logging.LogOrderRejected(symbol, string(side), "non-positive quantity/price or blank symbol")
		return nil, nil, ErrInvalidOrderParameters
	}
	if side == models.OrderSideSell && e.ledger.Shares(symbol).LessThan(quantity) {
		metrics.RecordOrderRejected("insufficient_shares")
		logging.LogOrderRejected(symbol, string(side), "insufficient shares")
		return nil, nil, ErrInsufficientShares
	}

	slot, err := e.registry.Resolve(symbol)
	if err != nil {
		metrics.RecordOrderRejected("capacity_exceeded")
		logging.LogOrderRejected(symbol, string(side), "registry capacity exceeded")
		return nil, nil, err
	}
	if slot == len(e.books) {
		e.books = append(e.books, NewOrderBook(symbol))
	}
	book := e.books[slot]

	order := models.NewOrder(symbol, side, price, quantity)
	e.orders[order.ID] = order

	batch := e.match(order, book)

	metrics.RecordOrderSubmitted(symbol, string(side))
	metrics.UpdateSymbolsRegistered(e.registry.Count())
	metrics.UpdateOrderbookDepth(symbol, string(models.OrderSideBuy), float64(book.OpenDepth(models.OrderSideBuy)))
	metrics.UpdateOrderbookDepth(symbol, string(models.OrderSideSell), float64(book.OpenDepth(models.OrderSideSell)))
	metrics.UpdatePortfolioValue(e.ledger.TotalValue().InexactFloat64())
	logging.LogOrderSubmitted(order.ID.String(), symbol, string(side),
		price.InexactFloat64(), quantity.InexactFloat64(), string(order.Status), len(batch))

	return order, batch, nil
}

// match crosses the incoming order against the opposite side of the book in
// price-time priority, falling back to a synthetic fill when nothing crossed.
// Every produced transaction is appended to the log and applied to the ledger
// before the next candidate is considered.
func (e *Engine) match(order *models.Order, book *OrderBook) []models.Transaction {
	batch := make([]models.Transaction, 0)

	opposite := models.OrderSideSell
	if order.Side == models.OrderSideSell {
		opposite = models.OrderSideBuy
	}

	book.eachLevelBestFirst(opposite, func(level *PriceLevel) bool {
		// Levels arrive best-price-first, so the first non-crossable price
		// ends the scan.
		if order.Side == models.OrderSideBuy {
			if order.Price.LessThan(level.Price) {
				return false
			}
		} else {
			if order.Price.GreaterThan(level.Price) {
				return false
			}
		}

		for el := level.Orders.Front(); el != nil; el = el.Next() {
			resting := el.Value.(*models.Order)
			if !resting.CanBeFilled() || resting.RemainingQuantity().LessThanOrEqual(decimal.Zero) {
				continue
			}

			matchQty := decimal.Min(order.RemainingQuantity(), resting.RemainingQuantity())

			// Price-time priority honors the older order's price; an exact
			// timestamp tie goes to the incoming order.
			execPrice := order.Price
			if resting.CreatedAt.Before(order.CreatedAt) {
				execPrice = resting.Price
			}

			order.Fill(matchQty)
			resting.Fill(matchQty)
			book.Update(resting)

			var tx *models.Transaction
			if order.Side == models.OrderSideBuy {
				tx = models.NewTransaction(models.RefFromOrderID(order.ID), models.RefFromOrderID(resting.ID),
					order.Symbol, matchQty, execPrice)
			} else {
				tx = models.NewTransaction(models.RefFromOrderID(resting.ID), models.RefFromOrderID(order.ID),
					order.Symbol, matchQty, execPrice)
			}
			batch = append(batch, e.record(tx, liquidityBook))

			if order.IsFilled() {
				return false
			}
		}
		return true
	})

	if order.RemainingQuantity().GreaterThan(decimal.Zero) {
		if len(batch) == 0 {
			// Synthetic-liquidity fallback: nothing crossed, so the full
			// original quantity fills at the order's own price against an
			// unlimited external counterparty. The order never rests.
			var tx *models.Transaction
			if order.Side == models.OrderSideBuy {
				tx = models.NewTransaction(models.RefFromOrderID(order.ID), models.RefAuto,
					order.Symbol, order.RemainingQuantity(), order.Price)
			} else {
				tx = models.NewTransaction(models.RefMarket, models.RefFromOrderID(order.ID),
					order.Symbol, order.RemainingQuantity(), order.Price)
			}
			order.Fill(order.RemainingQuantity())
			batch = append(batch, e.record(tx, liquiditySynthetic))
		} else {
			book.Insert(order)
		}
	}

	return batch
}

// record appends a transaction to the log, applies it to the ledger and
// emits observability signals. Returns a value copy for the broadcast batch.
func (e *Engine) record(tx *models.Transaction, liquidity string) models.Transaction {
	e.log.Append(tx)
	e.ledger.Apply(tx)
	metrics.RecordTransaction(tx.Symbol, liquidity, tx.Quantity.InexactFloat64())
	logging.LogFill(tx.ID.String(), tx.Symbol, string(tx.BuyOrderRef), string(tx.SellOrderRef),
		tx.Price.InexactFloat64(), tx.Quantity.InexactFloat64(), liquidity == liquiditySynthetic)
	return *tx
}

// Book returns ordered bid and ask snapshots for a symbol. Unknown symbols
// yield empty sequences, not an error, and consume no registry slot.
func (e *Engine) Book(symbol string) BookSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot, ok := e.registry.Lookup(symbol)
	if !ok || slot >= len(e.books) {
		return BookSnapshot{Bids: []models.Order{}, Asks: []models.Order{}}
	}

	book := e.books[slot]
	return BookSnapshot{
		Bids: book.Snapshot(models.OrderSideBuy),
		Asks: book.Snapshot(models.OrderSideSell),
	}
}

// Portfolio returns the current positions and their mark-to-market total
func (e *Engine) Portfolio() PortfolioSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return PortfolioSnapshot{
		Positions:  e.ledger.Positions(),
		TotalValue: e.ledger.TotalValue(),
	}
}

// RecentTransactions returns at most n transactions, most recent first
func (e *Engine) RecentTransactions(n int) []models.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Recent(n)
}

// Symbols returns every registered symbol in first-registration order
func (e *Engine) Symbols() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Symbols()
}

// FindOrder returns a copy of the order with the given id
func (e *Engine) FindOrder(id uuid.UUID) (models.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders[id]
	if !ok {
		return models.Order{}, false
	}
	return *order.Clone(), true
}

// Subscribe registers a listener for per-submission transaction batches
func (e *Engine) Subscribe(listener TransactionListener) {
	e.bus.Subscribe(listener)
}

// Unsubscribe removes a listener
func (e *Engine) Unsubscribe(listener TransactionListener) {
	e.bus.Unsubscribe(listener)
}
