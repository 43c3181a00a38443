package checkout

import (
	"context"
	"testing"

	"github.com/ekinderauto/storefront-backend/internal/cart"
	"github.com/ekinderauto/storefront-backend/internal/catalog"
	"github.com/ekinderauto/storefront-backend/pkg/config"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

func newTestCheckout() (Service, *cart.Store) {
	logg := logger.New(logger.Options{ServiceName: "checkout-test"})
	carts := cart.NewStore(cart.NewMemoryStorage(), cart.NewBus(), config.CartConfig{FreeShippingThreshold: 50}, logg)
	return NewService(carts, logg), carts
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:    "Julia M.",
		Email:   "julia@example.com",
		Address: "Musterstr. 1",
		City:    "Berlin",
		Zip:     "10115",
		Country: "DE",
	}
}

func TestSubmitClearsCartAndConfirms(t *testing.T) {
	svc, carts := newTestCheckout()
	ctx := context.Background()
	session := "sess-1"

	if _, err := carts.Add(ctx, session, catalog.Product{ID: "ET1", Price: 29.99}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := carts.Add(ctx, session, catalog.Product{ID: "ET2", Price: 24.99}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	notified := 0
	defer carts.Bus().Subscribe(func() { notified++ })()

	confirmation, err := svc.Submit(ctx, session, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if confirmation.OrderRef == "" {
		t.Fatal("expected order reference")
	}
	if len(confirmation.Items) != 2 || confirmation.Summary.ItemCount != 3 {
		t.Fatalf("snapshot wrong: %+v", confirmation)
	}
	if confirmation.Summary.TotalPrice != 79.97 {
		t.Fatalf("total = %v", confirmation.Summary.TotalPrice)
	}

	items, err := carts.Items(ctx, session)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart must be empty after submit, got %+v", items)
	}
	if notified != 1 {
		t.Fatalf("expected one broadcast from clear, got %d", notified)
	}
}

func TestSubmitEmptyCartConflicts(t *testing.T) {
	svc, _ := newTestCheckout()

	_, err := svc.Submit(context.Background(), "sess-1", validInput())
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}
