package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-admin/api/controllers"
	"github.com/angelmondragon/storefront-admin/api/middleware"
	"github.com/angelmondragon/storefront-admin/internal/admin"
	"github.com/angelmondragon/storefront-admin/internal/products"
	"github.com/angelmondragon/storefront-admin/pkg/config"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
)

// RateLimiter backs the admin mutation rate limit.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	AdminService admin.Service
	// ProductService backs the storefront catalog routes.
	ProductService products.Service
	// RateLimiter is optional; mutations are not limited without it.
	RateLimiter RateLimiter
	// ReadyChecks are pinged by /health/ready.
	ReadyChecks map[string]controllers.Pinger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func NewRouter(params RouterParams) http.Handler {
	cfg, logg := params.Config, params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.ReadyChecks))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics)
	}

	mutationPolicy := middleware.NewMutationRateLimitPolicy(
		cfg.RateLimit.MutationWindow,
		cfg.RateLimit.MutationIPLimit,
		cfg.RateLimit.MutationActorLimit,
	)
	limiter := middleware.MutationRateLimit(mutationPolicy, params.RateLimiter, logg)

	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/overview", controllers.AdminOverview(params.AdminService, logg))

		r.Group(func(r chi.Router) {
			r.Use(limiter)
			r.Put("/products/{productId}", controllers.AdminUpdateProduct(params.AdminService, logg))
			r.Delete("/products/{productId}", controllers.AdminDeleteProduct(params.AdminService, logg))
			r.Put("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(params.AdminService, logg))
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(params.ProductService, logg))
		r.Get("/{productId}", controllers.ProductGet(params.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(limiter)
			r.Post("/", controllers.ProductCreate(params.ProductService, logg))
			r.Put("/{productId}", controllers.ProductUpdate(params.ProductService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(params.ProductService, logg))
		})
	})

	return r
}
