package controllers

import (
	"net"
	"net/http"

	"github.com/ekinderauto/storefront-backend/api/responses"
	"github.com/ekinderauto/storefront-backend/api/validators"
	newslettersvc "github.com/ekinderauto/storefront-backend/internal/newsletter"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

// NewsletterSignup forwards a signup to the form backend. Failures map
// to a retryable error the form shows inline.
func NewsletterSignup(svc newslettersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		var payload newslettersvc.SignupInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Signup(r.Context(), clientIP(r), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "subscribed"})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
