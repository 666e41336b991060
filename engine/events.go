package engine

import (
	"sync"

	"github.com/jbradford55/StockTradeProj/models"
)

// TransactionListener receives the batch of transactions produced by one
// submission. Listeners are identified by reference: subscribing the same
// value twice is a no-op, and Unsubscribe removes exactly that value.
type TransactionListener interface {
	OnTransactions(batch []models.Transaction)
}

// NotificationBus fans a submission's transaction batch out to subscribers.
// Delivery is synchronous and in-line with the submitting call: each listener
// is invoked once per submission, and empty batches are never broadcast.
type NotificationBus struct {
	mu        sync.RWMutex
	listeners map[TransactionListener]struct{}
}

// NewNotificationBus creates a bus with no listeners
func NewNotificationBus() *NotificationBus {
	return &NotificationBus{
		listeners: make(map[TransactionListener]struct{}),
	}
}

// Subscribe registers a listener
func (nb *NotificationBus) Subscribe(listener TransactionListener) {
	if listener == nil {
		return
	}
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.listeners[listener] = struct{}{}
}

// Unsubscribe removes a previously registered listener
func (nb *NotificationBus) Unsubscribe(listener TransactionListener) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	delete(nb.listeners, listener)
}

// ListenerCount returns the number of registered listeners
func (nb *NotificationBus) ListenerCount() int {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return len(nb.listeners)
}

// Broadcast delivers the batch to every current listener. Empty batches are
// suppressed.
func (nb *NotificationBus) Broadcast(batch []models.Transaction) {
	if len(batch) == 0 {
		return
	}

	nb.mu.RLock()
	listeners := make([]TransactionListener, 0, len(nb.listeners))
	for l := range nb.listeners {
		listeners = append(listeners, l)
	}
	nb.mu.RUnlock()

	for _, l := range listeners {
		l.OnTransactions(batch)
	}
}
