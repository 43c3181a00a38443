package cart

import (
	"context"
	"testing"

	"github.com/ekinderauto/storefront-backend/pkg/config"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	if value, err := storage.Get(ctx, "missing"); err != nil || value != nil {
		t.Fatalf("missing key should yield (nil, nil), got %v %v", value, err)
	}

	if err := storage.Set(ctx, "s1", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := storage.Get(ctx, "s1")
	if err != nil || string(value) != `[]` {
		t.Fatalf("get after set: %q %v", value, err)
	}

	// the returned slice is a copy; mutating it must not corrupt storage
	value[0] = 'X'
	again, _ := storage.Get(ctx, "s1")
	if string(again) != `[]` {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}

	if err := storage.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if value, _ := storage.Get(ctx, "s1"); value != nil {
		t.Fatalf("expected nil after delete, got %q", value)
	}
}

func TestStoreRejectsMalformedStoredCart(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	if err := storage.Set(ctx, "s1", []byte(`{not json`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	store := NewStore(storage, NewBus(), config.CartConfig{FreeShippingThreshold: 50}, logger.New(logger.Options{ServiceName: "cart-test"}))
	_, err := store.Items(ctx, "s1")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal code, got %v", err)
	}
}
