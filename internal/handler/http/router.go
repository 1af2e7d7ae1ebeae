package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sajathahamed/Unilifmobile/internal/service"
	"github.com/sajathahamed/Unilifmobile/pkg/health"
	"github.com/sajathahamed/Unilifmobile/pkg/middleware"
)

const serviceName = "unilife"

// Services bundles the business services the API exposes.
type Services struct {
	Home          *service.HomeService
	Timetable     *service.TimetableService
	Catalog       *service.CatalogService
	Cart          *service.CartService
	Checkout      *service.CheckoutService
	Orders        *service.OrderService
	Laundry       *service.LaundryService
	Notifications *service.NotificationService
	Planner       *service.PlannerService
}

// RouterConfig holds the HTTP knobs that come from configuration.
type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	CatalogMaxAge  int
	// Per-student limit on the AI backed routes. Zero disables it.
	AIRatePerMinute int
	AIRateBurst     int
}

// NewRouter creates a chi router with all campus API routes registered.
func NewRouter(svc Services, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	home := NewHomeHandler(svc.Home, svc.Timetable, logger)
	catalog := NewCatalogHandler(svc.Catalog, svc.Laundry, logger)
	cart := NewCartHandler(svc.Cart, svc.Checkout, logger)
	orders := NewOrderHandler(svc.Orders, logger)
	laundry := NewLaundryHandler(svc.Laundry, logger)
	notifications := NewNotificationHandler(svc.Notifications, logger)
	trips := NewTripHandler(svc.Planner, logger)
	aiLimit := middleware.StudentRateLimit(cfg.AIRatePerMinute, cfg.AIRateBurst, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireStudent)
		r.Use(middleware.RequestLogger(logger))

		// Long-lived; must stay outside the timeout and compression group.
		r.Get("/orders/{orderId}/tracking/stream", orders.StreamTracking)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(chimw.Timeout(cfg.RequestTimeout))
			r.Use(middleware.ContentTypeJSON)

			r.Get("/home", home.Dashboard)
			r.Get("/timetable", home.Timetable)

			r.Group(func(r chi.Router) {
				r.Use(middleware.CacheControl(cfg.CatalogMaxAge))
				r.Get("/vendors", catalog.OpenVendors)
				r.Get("/vendors/{vendorId}/menu", catalog.Menu)
				r.Get("/laundry/services", catalog.LaundryServices)
				r.Get("/laundry/categories", catalog.LaundryCategories)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cart.Get)
				r.Delete("/", cart.Clear)
				r.Post("/items", cart.AddItem)
				r.Put("/items/{itemId}", cart.UpdateQuantity)
				r.Delete("/items/{itemId}", cart.RemoveItem)
			})
			r.Post("/checkout", cart.Checkout)
			r.Delete("/session", cart.EndSession)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/active", orders.Active)
				r.Get("/{orderId}", orders.Get)
				r.Get("/{orderId}/tracking", orders.Tracking)
			})

			r.Route("/laundry", func(r chi.Router) {
				r.Post("/orders", laundry.PlaceOrder)
				r.Get("/orders", laundry.List)
				r.Get("/orders/active", laundry.Active)
				r.With(aiLimit).Post("/detect", laundry.DetectItems)
			})

			r.Get("/notifications", notifications.List)
			r.Put("/notifications/{id}/read", notifications.MarkRead)

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", trips.List)
				r.With(aiLimit).Post("/", trips.Plan)
				r.With(aiLimit).Post("/{tripId}/itinerary", trips.RegenerateItinerary)
			})
		})
	})

	return r
}
