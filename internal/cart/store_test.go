package cart

import (
	"context"
	"testing"

	"github.com/ekinderauto/storefront-backend/internal/catalog"
	"github.com/ekinderauto/storefront-backend/pkg/config"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

func newTestStore() *Store {
	cfg := config.CartConfig{FreeShippingThreshold: 50}
	logg := logger.New(logger.Options{ServiceName: "cart-test"})
	return NewStore(NewMemoryStorage(), NewBus(), cfg, logg)
}

func product(id string, price float64) catalog.Product {
	return catalog.Product{ID: id, Name: "Produkt " + id, Price: price, InStock: true}
}

func TestStoreAddMergesSameProduct(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	session := "sess-1"

	if _, err := store.Add(ctx, session, product("ET1", 29.99), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := store.Items(ctx, session)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", items)
	}

	if _, err := store.Add(ctx, session, product("ET1", 29.99), 3); err != nil {
		t.Fatalf("second add: %v", err)
	}
	items, err = store.Items(ctx, session)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("second add must merge, got %d lines", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", items[0].Quantity)
	}
}

func TestStoreAddDefaultsQuantityToOne(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	items, err := store.Add(ctx, "sess-1", product("ET1", 10), 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %+v", items)
	}
}

func TestStoreUpdateQuantityZeroRemoves(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	session := "sess-1"

	if _, err := store.Add(ctx, session, product("ET1", 29.99), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add(ctx, session, product("ET2", 9.99), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := store.UpdateQuantity(ctx, session, "ET1", 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(items) != 1 || items[0].Product.ID != "ET2" {
		t.Fatalf("expected ET1 removed, got %+v", items)
	}

	// explicit remove of the other entry leaves the cart empty
	items, err = store.Remove(ctx, session, "ET2")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestStoreUpdateQuantityReplacesInPlace(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	session := "sess-1"

	if _, err := store.Add(ctx, session, product("ET1", 29.99), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add(ctx, session, product("ET2", 9.99), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := store.UpdateQuantity(ctx, session, "ET1", 7)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if items[0].Product.ID != "ET1" || items[0].Quantity != 7 {
		t.Fatalf("expected in-place update preserving order, got %+v", items)
	}
	if items[1].Product.ID != "ET2" || items[1].Quantity != 1 {
		t.Fatalf("other entry must be untouched, got %+v", items[1])
	}
}

func TestStoreSummaryEndToEnd(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	session := "sess-1"

	if _, err := store.Add(ctx, session, product("A", 29.99), 1); err != nil {
		t.Fatalf("add A: %v", err)
	}
	if _, err := store.Add(ctx, session, product("B", 24.99), 2); err != nil {
		t.Fatalf("add B: %v", err)
	}

	summary, err := store.Summarize(ctx, session)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.ItemCount != 3 {
		t.Fatalf("item count = %d, want 3", summary.ItemCount)
	}
	if summary.TotalPrice != 79.97 {
		t.Fatalf("total = %v, want 79.97", summary.TotalPrice)
	}
	if summary.FreeShippingProgress != 100 {
		t.Fatalf("progress = %v, want capped 100", summary.FreeShippingProgress)
	}
}

func TestStoreSummaryPartialProgress(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	if _, err := store.Add(ctx, "sess-1", product("A", 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	summary, err := store.Summarize(ctx, "sess-1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.FreeShippingProgress != 20 {
		t.Fatalf("progress = %v, want 20", summary.FreeShippingProgress)
	}
}

func TestStoreBroadcastObservesPostMutationState(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	session := "sess-1"

	var observed [][]Item
	unsubscribe := store.Bus().Subscribe(func() {
		items, err := store.Items(ctx, session)
		if err != nil {
			t.Errorf("subscriber read: %v", err)
			return
		}
		observed = append(observed, items)
	})
	defer unsubscribe()

	if _, err := store.Add(ctx, session, product("ET1", 29.99), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(observed) != 1 {
		t.Fatalf("expected one notification, got %d", len(observed))
	}
	if len(observed[0]) != 1 || observed[0][0].Quantity != 2 {
		t.Fatalf("subscriber saw pre-mutation state: %+v", observed[0])
	}

	if _, err := store.UpdateQuantity(ctx, session, "ET1", 5); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(observed) != 2 {
		t.Fatalf("expected two notifications, got %d", len(observed))
	}
	if observed[1][0].Quantity != 5 {
		t.Fatalf("subscriber saw stale quantity: %+v", observed[1])
	}
}

func TestStoreClearEmptiesAndNotifies(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	session := "sess-1"

	if _, err := store.Add(ctx, session, product("ET1", 29.99), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	notified := 0
	unsubscribe := store.Bus().Subscribe(func() { notified++ })
	defer unsubscribe()

	if err := store.Clear(ctx, session); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if notified != 1 {
		t.Fatalf("expected clear to notify, got %d", notified)
	}

	items, err := store.Items(ctx, session)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", items)
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	if _, err := store.Add(ctx, "sess-a", product("ET1", 29.99), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := store.Items(ctx, "sess-b")
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("session b must not see session a's cart: %+v", items)
	}
}
