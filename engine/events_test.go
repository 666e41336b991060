package engine

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jbradford55/StockTradeProj/models"
)

func sampleBatch() []models.Transaction {
	tx := models.NewTransaction(models.RefFromOrderID(uuid.New()), models.RefAuto, "AAPL", d("1"), d("10"))
	return []models.Transaction{*tx}
}

func TestBusSubscribeIsIdempotent(t *testing.T) {
	bus := NewNotificationBus()
	listener := &captureListener{}

	bus.Subscribe(listener)
	bus.Subscribe(listener)
	if bus.ListenerCount() != 1 {
		t.Fatalf("duplicate subscribe must be a no-op, count = %d", bus.ListenerCount())
	}

	bus.Broadcast(sampleBatch())
	if len(listener.batches) != 1 {
		t.Errorf("expected exactly one delivery, got %d", len(listener.batches))
	}
}

func TestBusSubscribeNilIsIgnored(t *testing.T) {
	bus := NewNotificationBus()
	bus.Subscribe(nil)
	if bus.ListenerCount() != 0 {
		t.Errorf("nil listener must not register, count = %d", bus.ListenerCount())
	}
}

func TestBusEmptyBatchSuppressed(t *testing.T) {
	bus := NewNotificationBus()
	listener := &captureListener{}
	bus.Subscribe(listener)

	bus.Broadcast(nil)
	bus.Broadcast([]models.Transaction{})

	if len(listener.batches) != 0 {
		t.Errorf("empty batches must not be delivered, got %d", len(listener.batches))
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewNotificationBus()
	kept := &captureListener{}
	dropped := &captureListener{}
	bus.Subscribe(kept)
	bus.Subscribe(dropped)

	bus.Unsubscribe(dropped)
	// Unsubscribing an unknown listener is harmless.
	bus.Unsubscribe(&captureListener{})

	bus.Broadcast(sampleBatch())

	if len(kept.batches) != 1 {
		t.Errorf("remaining listener missed the batch")
	}
	if len(dropped.batches) != 0 {
		t.Errorf("unsubscribed listener still received a batch")
	}
	if bus.ListenerCount() != 1 {
		t.Errorf("expected 1 listener, got %d", bus.ListenerCount())
	}
}
