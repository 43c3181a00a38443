package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ekinderauto/storefront-backend/api/responses"
	"github.com/ekinderauto/storefront-backend/api/validators"
	"github.com/ekinderauto/storefront-backend/internal/catalog"
	"github.com/ekinderauto/storefront-backend/internal/engagement"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

// ProductList serves the grouped catalog, optionally filtered by the
// `kategorie` query parameter (a category slug).
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			CategorySlug: validators.QueryString(r, "kategorie", ""),
			Limit:        limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

type productDetailResponse struct {
	*catalog.ProductDetail
	Live *engagement.FeedSnapshot `json:"live,omitempty"`
}

// ProductDetail resolves a slug (name--SKU or bare SKU) to the product
// and its variants, plus a snapshot of the page's live widgets.
func ProductDetail(svc catalog.Service, feeds *engagement.Feeds, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		detail, err := svc.GetProductDetail(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := productDetailResponse{ProductDetail: detail}
		if feeds != nil {
			snap := feeds.Snapshot()
			payload.Live = &snap
		}
		responses.WriteSuccess(w, payload)
	}
}

// CategoryList serves the fixed category order for tiles and sidebar.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": svc.ListCategories(r.Context())})
	}
}
