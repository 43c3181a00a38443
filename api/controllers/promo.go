package controllers

import (
	"net/http"

	"github.com/ekinderauto/storefront-backend/api/middleware"
	"github.com/ekinderauto/storefront-backend/api/responses"
	"github.com/ekinderauto/storefront-backend/internal/engagement"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

type popupStateResponse struct {
	Show    bool  `json:"show"`
	DelayMS int64 `json:"delayMs"`
}

// PromoPopupState tells the page whether to schedule the promo popup.
// Consulted once at page load.
func PromoPopupState(svc *engagement.PopupService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requirePromoSession(w, r, svc, logg)
		if !ok {
			return
		}

		state, err := svc.State(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, popupStateResponse{
			Show:    state.Show,
			DelayMS: state.Delay.Milliseconds(),
		})
	}
}

// PromoPopupDismiss marks the popup as seen for this session.
func PromoPopupDismiss(svc *engagement.PopupService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requirePromoSession(w, r, svc, logg)
		if !ok {
			return
		}

		if err := svc.Dismiss(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "dismissed"})
	}
}

func requirePromoSession(w http.ResponseWriter, r *http.Request, svc *engagement.PopupService, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promo service unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
		return "", false
	}
	return sessionID, true
}
