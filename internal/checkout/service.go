package checkout

import (
	"context"
	"time"

	"github.com/ekinderauto/storefront-backend/internal/cart"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

// SubmitInput is the validated checkout form.
type SubmitInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Confirmation is the demo order receipt. No order is persisted and no
// payment backend is contacted; submission clears the cart and hands the
// customer a reference number for the thank-you page.
type Confirmation struct {
	OrderRef    string       `json:"orderRef"`
	Email       string       `json:"email"`
	Items       []cart.Item  `json:"items"`
	Summary     cart.Summary `json:"summary"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

// Service handles the demo checkout submission.
type Service interface {
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*Confirmation, error)
}

type service struct {
	carts *cart.Store
	logg  *logger.Logger
}

func NewService(carts *cart.Store, logg *logger.Logger) Service {
	return &service{carts: carts, logg: logg}
}

// Submit snapshots the cart, clears it, and returns the confirmation.
// The clear broadcasts on the cart bus, so badge-style consumers drop to
// zero immediately.
func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*Confirmation, error) {
	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart is empty")
	}

	summary, err := s.carts.Summarize(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	confirmation := &Confirmation{
		OrderRef:    uuid.NewString(),
		Email:       input.Email,
		Items:       items,
		Summary:     summary,
		SubmittedAt: time.Now().UTC(),
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_ref":  confirmation.OrderRef,
		"item_count": summary.ItemCount,
	})
	s.logg.Info(ctx, "demo checkout submitted")
	return confirmation, nil
}
