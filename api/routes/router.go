package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/flash"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	Flash            flash.Store
	InventoryService inventory.Service
	Registry         *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	registry := p.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, p.Redis))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Get("/", controllers.Home(p.InventoryService, p.Flash, p.Logger))
	r.Get("/home", controllers.Home(p.InventoryService, p.Flash, p.Logger))

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/add", controllers.AddItemForm(p.Flash, p.Logger))
		r.Post("/add", controllers.AddItem(p.InventoryService, p.Flash, p.Logger))

		r.Get("/update-quantity/{sku}", controllers.UpdateQuantityForm(p.InventoryService, p.Logger))
		r.Post("/update-quantity/{sku}", controllers.UpdateQuantity(p.InventoryService, p.Flash, p.Logger))

		r.Get("/update/{sku}", controllers.UpdateItemForm(p.InventoryService, p.Logger))
		r.Post("/update/{sku}", controllers.UpdateItem(p.InventoryService, p.Flash, p.Logger))

		r.Get("/report", controllers.Report(p.InventoryService, p.Logger))
	})

	return r
}
