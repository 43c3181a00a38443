package cart

import (
	"context"
	"encoding/json"

	"github.com/ekinderauto/storefront-backend/internal/catalog"
	"github.com/ekinderauto/storefront-backend/pkg/config"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Item is one cart line: a product snapshot plus a positive quantity.
// The snapshot is taken at add time; price changes in the catalog do not
// retroactively reprice stored carts.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Summary carries the derived cart values, always recomputed from the
// live list.
type Summary struct {
	ItemCount            int     `json:"itemCount"`
	TotalPrice           float64 `json:"totalPrice"`
	FreeShippingProgress float64 `json:"freeShippingProgress"`
}

// Store owns the per-session cart list. Every mutation follows the same
// discipline: read the whole list, apply the change, write the whole
// list back, then publish on the bus. Persist-then-publish ordering means
// a subscriber re-reading storage on notification always sees the
// post-mutation state.
type Store struct {
	storage Storage
	bus     *Bus
	cfg     config.CartConfig
	logg    *logger.Logger
}

func NewStore(storage Storage, bus *Bus, cfg config.CartConfig, logg *logger.Logger) *Store {
	return &Store{storage: storage, bus: bus, cfg: cfg, logg: logg}
}

// Bus exposes the change-notification channel so consumers can subscribe.
func (s *Store) Bus() *Bus {
	return s.bus
}

// Items is the durable read used to hydrate consumers.
func (s *Store) Items(ctx context.Context, sessionID string) ([]Item, error) {
	raw, err := s.storage.Get(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading cart")
	}
	if len(raw) == 0 {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding stored cart")
	}
	return items, nil
}

// Add merges the product into the cart: an existing line's quantity is
// incremented, otherwise a new line is appended. No upper bound is
// enforced on quantities.
func (s *Store) Add(ctx context.Context, sessionID string, product catalog.Product, quantity int) ([]Item, error) {
	if quantity <= 0 {
		quantity = 1
	}

	items, err := s.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{Product: product, Quantity: quantity})
	}

	if err := s.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity replaces the matching line's quantity, leaving order and
// other lines untouched. A quantity of zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, productID)
	}

	items, err := s.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			break
		}
	}

	if err := s.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove filters out the matching line.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) ([]Item, error) {
	items, err := s.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.persist(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear resets the cart to empty. Used by checkout submission.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.storage.Delete(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	s.bus.Publish()
	return nil
}

// Summarize recomputes the derived values from the stored list.
func (s *Store) Summarize(ctx context.Context, sessionID string) (Summary, error) {
	items, err := s.Items(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return s.summarize(items), nil
}

func (s *Store) summarize(items []Item) Summary {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		line := decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	total = total.Round(2)

	progress := float64(0)
	if s.cfg.FreeShippingThreshold > 0 {
		threshold := decimal.NewFromFloat(s.cfg.FreeShippingThreshold)
		pct := total.Div(threshold).Mul(decimal.NewFromInt(100))
		if pct.GreaterThan(decimal.NewFromInt(100)) {
			pct = decimal.NewFromInt(100)
		}
		progress, _ = pct.Round(2).Float64()
	}

	totalFloat, _ := total.Float64()
	return Summary{
		ItemCount:            count,
		TotalPrice:           totalFloat,
		FreeShippingProgress: progress,
	}
}

func (s *Store) persist(ctx context.Context, sessionID string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := s.storage.Set(ctx, sessionID, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing cart")
	}
	s.bus.Publish()
	return nil
}
