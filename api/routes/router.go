package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ekinderauto/storefront-backend/api/controllers"
	"github.com/ekinderauto/storefront-backend/api/middleware"
	"github.com/ekinderauto/storefront-backend/internal/cart"
	"github.com/ekinderauto/storefront-backend/internal/catalog"
	checkoutsvc "github.com/ekinderauto/storefront-backend/internal/checkout"
	"github.com/ekinderauto/storefront-backend/internal/engagement"
	newslettersvc "github.com/ekinderauto/storefront-backend/internal/newsletter"
	"github.com/ekinderauto/storefront-backend/pkg/config"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Pingers    map[string]controllers.Pinger
	Catalog    catalog.Service
	Cart       *cart.Store
	Checkout   checkoutsvc.Service
	Newsletter newslettersvc.Service
	Promo      *engagement.PopupService
	Feeds      *engagement.Feeds
}

// NewRouter assembles the storefront API.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/{slug}", controllers.ProductDetail(deps.Catalog, deps.Feeds, logg))
		})
		r.Get("/categories", controllers.CategoryList(deps.Catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, logg))
			r.Put("/items/{productId}", controllers.CartUpdateQuantity(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemove(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))
		r.Post("/newsletter", controllers.NewsletterSignup(deps.Newsletter, logg))

		r.Route("/promo/popup", func(r chi.Router) {
			r.Get("/", controllers.PromoPopupState(deps.Promo, logg))
			r.Post("/dismiss", controllers.PromoPopupDismiss(deps.Promo, logg))
		})
	})

	return r
}
