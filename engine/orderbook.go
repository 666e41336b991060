package engine

import (
	"container/list"

	"github.com/google/btree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jbradford55/StockTradeProj/models"
)

// PriceLevel holds the FIFO queue of orders resting at one price. Volume
// tracks the remaining quantity of fillable orders only; filled orders stay
// in the queue for audit and status display but contribute nothing.
type PriceLevel struct {
	Price  decimal.Decimal
	Orders *list.List
	Volume decimal.Decimal
}

// NewPriceLevel creates a new price level
func NewPriceLevel(price decimal.Decimal) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		Orders: list.New(),
		Volume: decimal.Zero,
	}
}

// AddOrder appends an order to the level's FIFO queue
func (pl *PriceLevel) AddOrder(order *models.Order) *list.Element {
	element := pl.Orders.PushBack(order)
	if order.CanBeFilled() {
		pl.Volume = pl.Volume.Add(order.RemainingQuantity())
	}
	return element
}

// RemoveOrder removes an order element from the level
func (pl *PriceLevel) RemoveOrder(element *list.Element) {
	if element == nil {
		return
	}
	pl.Orders.Remove(element)
	pl.UpdateVolume()
}

// UpdateVolume recomputes the fillable volume at this level
func (pl *PriceLevel) UpdateVolume() {
	pl.Volume = decimal.Zero
	for e := pl.Orders.Front(); e != nil; e = e.Next() {
		order := e.Value.(*models.Order)
		if order.CanBeFilled() {
			pl.Volume = pl.Volume.Add(order.RemainingQuantity())
		}
	}
}

// OpenCount returns the number of orders at this level still fillable
func (pl *PriceLevel) OpenCount() int {
	n := 0
	for e := pl.Orders.Front(); e != nil; e = e.Next() {
		if e.Value.(*models.Order).CanBeFilled() {
			n++
		}
	}
	return n
}

func (pl *PriceLevel) Less(than btree.Item) bool {
	other := than.(*PriceLevel)
	return pl.Price.LessThan(other.Price)
}

// OrderBookSide is one side of the book, price levels kept in a btree. The
// external contract is the flat comparator: bids iterate (price desc,
// createdAt asc), asks iterate (price asc, createdAt asc); the tree plus the
// per-level FIFO queues preserve exactly that ordering.
type OrderBookSide struct {
	tree *btree.BTree
}

// NewOrderBookSide creates an empty side
func NewOrderBookSide() *OrderBookSide {
	return &OrderBookSide{
		tree: btree.New(32),
	}
}

// GetOrCreatePriceLevel returns the level for price, creating it if absent
func (obs *OrderBookSide) GetOrCreatePriceLevel(price decimal.Decimal) *PriceLevel {
	searchLevel := &PriceLevel{Price: price}

	if item := obs.tree.Get(searchLevel); item != nil {
		return item.(*PriceLevel)
	}

	newLevel := NewPriceLevel(price)
	obs.tree.ReplaceOrInsert(newLevel)
	return newLevel
}

// RemovePriceLevel removes a price level from the tree
func (obs *OrderBookSide) RemovePriceLevel(price decimal.Decimal) {
	searchLevel := &PriceLevel{Price: price}
	obs.tree.Delete(searchLevel)
}

// Len returns the number of price levels
func (obs *OrderBookSide) Len() int {
	return obs.tree.Len()
}

// OrderLocation tracks where an order lives in the book
type OrderLocation struct {
	PriceLevel *PriceLevel
	Element    *list.Element
}

// OrderBook holds the bid and ask collections for one symbol. Orders are
// never deleted by the matching flow: filled orders remain queryable in
// place, distinguishable by status. Remove exists for completeness (and a
// future cancellation path) only.
type OrderBook struct {
	Symbol string
	Bids   *OrderBookSide
	Asks   *OrderBookSide
	Orders map[uuid.UUID]*OrderLocation
}

// NewOrderBook creates an empty book for a symbol
func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		Symbol: symbol,
		Bids:   NewOrderBookSide(),
		Asks:   NewOrderBookSide(),
		Orders: make(map[uuid.UUID]*OrderLocation),
	}
}

func (ob *OrderBook) sideFor(side models.OrderSide) *OrderBookSide {
	if side == models.OrderSideBuy {
		return ob.Bids
	}
	return ob.Asks
}

// Insert places an order into its side of the book. Post-condition: the side
// remains sorted per the side comparator; within a price, arrival order is
// preserved.
func (ob *OrderBook) Insert(order *models.Order) {
	level := ob.sideFor(order.Side).GetOrCreatePriceLevel(order.Price)
	element := level.AddOrder(order)
	ob.Orders[order.ID] = &OrderLocation{PriceLevel: level, Element: element}
}

// Update replaces the stored order with matching id in place. Price and
// CreatedAt never change after insertion, so no resort is needed; only the
// level volume is refreshed.
func (ob *OrderBook) Update(order *models.Order) bool {
	loc, ok := ob.Orders[order.ID]
	if !ok {
		return false
	}
	loc.Element.Value = order
	loc.PriceLevel.UpdateVolume()
	return true
}

// Remove deletes an order by id. Not exercised by the normal matching flow
// (filled orders are kept), but required for the cancellation extension.
func (ob *OrderBook) Remove(id uuid.UUID) *models.Order {
	loc, ok := ob.Orders[id]
	if !ok {
		return nil
	}

	order := loc.Element.Value.(*models.Order)
	loc.PriceLevel.RemoveOrder(loc.Element)

	if loc.PriceLevel.Orders.Len() == 0 {
		ob.sideFor(order.Side).RemovePriceLevel(loc.PriceLevel.Price)
	}

	delete(ob.Orders, id)
	return order
}

// Contains reports whether an order with the given id is in the book
func (ob *OrderBook) Contains(id uuid.UUID) bool {
	_, ok := ob.Orders[id]
	return ok
}

// Snapshot returns the current ordered view of one side as order copies, in
// full priority order including filled entries.
func (ob *OrderBook) Snapshot(side models.OrderSide) []models.Order {
	out := make([]models.Order, 0)

	appendLevel := func(item btree.Item) bool {
		level := item.(*PriceLevel)
		for e := level.Orders.Front(); e != nil; e = e.Next() {
			out = append(out, *e.Value.(*models.Order).Clone())
		}
		return true
	}

	if side == models.OrderSideBuy {
		ob.Bids.tree.Descend(appendLevel)
	} else {
		ob.Asks.tree.Ascend(appendLevel)
	}
	return out
}

// OpenDepth returns the number of fillable orders resting on one side
func (ob *OrderBook) OpenDepth(side models.OrderSide) int {
	depth := 0
	ob.sideFor(side).tree.Ascend(func(item btree.Item) bool {
		depth += item.(*PriceLevel).OpenCount()
		return true
	})
	return depth
}

// eachLevelBestFirst walks price levels in matching priority order for the
// given side (bids high to low, asks low to high) until fn returns false.
func (ob *OrderBook) eachLevelBestFirst(side models.OrderSide, fn func(*PriceLevel) bool) {
	iter := func(item btree.Item) bool {
		return fn(item.(*PriceLevel))
	}
	if side == models.OrderSideBuy {
		ob.Bids.tree.Descend(iter)
	} else {
		ob.Asks.tree.Ascend(iter)
	}
}
