package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ekinderauto/storefront-backend/api/middleware"
	"github.com/ekinderauto/storefront-backend/api/responses"
	"github.com/ekinderauto/storefront-backend/api/validators"
	"github.com/ekinderauto/storefront-backend/internal/cart"
	"github.com/ekinderauto/storefront-backend/internal/catalog"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

type cartAddRequest struct {
	Product  catalog.Product `json:"product" validate:"required"`
	Quantity int             `json:"quantity" validate:"omitempty,min=1"`
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// cartPayload is the common response shape: the full list plus the
// derived values, so consumers never need a second round trip.
type cartPayload struct {
	Items   []cart.Item  `json:"items"`
	Summary cart.Summary `json:"summary"`
}

// CartFetch hydrates a consumer from durable storage.
func CartFetch(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, store, logg)
		if !ok {
			return
		}

		items, err := store.Items(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, store, logg, sessionID, items)
	}
}

// CartAdd merges a product into the cart.
func CartAdd(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, store, logg)
		if !ok {
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Product.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product.id is required"))
			return
		}

		items, err := store.Add(r.Context(), sessionID, payload.Product, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, store, logg, sessionID, items)
	}
}

// CartUpdateQuantity replaces one line's quantity; zero removes the line.
func CartUpdateQuantity(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, store, logg)
		if !ok {
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := store.UpdateQuantity(r.Context(), sessionID, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, store, logg, sessionID, items)
	}
}

// CartRemove drops one line from the cart.
func CartRemove(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, store, logg)
		if !ok {
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		items, err := store.Remove(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, store, logg, sessionID, items)
	}
}

func requireSession(w http.ResponseWriter, r *http.Request, store *cart.Store, logg *logger.Logger) (string, bool) {
	if store == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
		return "", false
	}
	return sessionID, true
}

func writeCart(w http.ResponseWriter, r *http.Request, store *cart.Store, logg *logger.Logger, sessionID string, items []cart.Item) {
	summary, err := store.Summarize(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, cartPayload{Items: items, Summary: summary})
}
