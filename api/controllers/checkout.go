package controllers

import (
	"net/http"

	"github.com/ekinderauto/storefront-backend/api/middleware"
	"github.com/ekinderauto/storefront-backend/api/responses"
	"github.com/ekinderauto/storefront-backend/api/validators"
	checkoutsvc "github.com/ekinderauto/storefront-backend/internal/checkout"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

// CheckoutSubmit handles the demo order submission: validates the form,
// clears the cart, returns the confirmation.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload checkoutsvc.SubmitInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Submit(r.Context(), sessionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
