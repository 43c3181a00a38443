package validators

import (
	"net/http"
	"strconv"

	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
)

// QueryString returns the trimmed query parameter or the fallback.
func QueryString(r *http.Request, name, fallback string) string {
	if value := r.URL.Query().Get(name); value != "" {
		return value
	}
	return fallback
}

// QueryInt parses an optional positive integer query parameter.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a non-negative integer")
	}
	return value, nil
}
