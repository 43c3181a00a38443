package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ekinderauto/storefront-backend/api/controllers"
	"github.com/ekinderauto/storefront-backend/api/routes"
	"github.com/ekinderauto/storefront-backend/internal/cart"
	"github.com/ekinderauto/storefront-backend/internal/catalog"
	"github.com/ekinderauto/storefront-backend/internal/checkout"
	"github.com/ekinderauto/storefront-backend/internal/engagement"
	"github.com/ekinderauto/storefront-backend/internal/newsletter"
	"github.com/ekinderauto/storefront-backend/pkg/config"
	"github.com/ekinderauto/storefront-backend/pkg/db"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
	"github.com/ekinderauto/storefront-backend/pkg/migrate"
	"github.com/ekinderauto/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	catalogService := catalog.NewService(catalog.NewRepository(dbClient.DB()), cfg.Catalog, logg)

	cartStore := cart.NewStore(
		cart.NewRedisStorage(redisClient, cfg.Cart.Retention),
		cart.NewBus(),
		cfg.Cart,
		logg,
	)

	checkoutService := checkout.NewService(cartStore, logg)
	newsletterService := newsletter.NewService(newsletter.NewClient(cfg.Newsletter), redisClient, cfg.Newsletter, logg)
	promoService := engagement.NewPopupService(engagement.NewRedisFlagStore(redisClient, cfg.Cart.Retention), cfg.Promo)

	viewers := engagement.NewViewerFeed(cfg.Promo.ViewerMin, cfg.Promo.ViewerMax, time.Now().UnixNano())
	stopViewers := viewers.Start(context.Background(), cfg.Promo.ViewerTick)
	defer stopViewers()
	var countdown *engagement.Countdown
	if cfg.Promo.SaleEndsAt != "" {
		deadline, err := time.Parse(time.RFC3339, cfg.Promo.SaleEndsAt)
		if err != nil {
			logg.Error(context.Background(), "invalid sale deadline, countdown disabled", err)
		} else {
			countdown = engagement.NewCountdown(deadline)
		}
	}
	feeds := engagement.NewFeeds(viewers, countdown)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config: cfg,
			Logger: logg,
			Pingers: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
			Catalog:    catalogService,
			Cart:       cartStore,
			Checkout:   checkoutService,
			Newsletter: newsletterService,
			Promo:      promoService,
			Feeds:      feeds,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
