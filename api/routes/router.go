package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/firedoors/firedoors-backend/api/controllers"
	"github.com/firedoors/firedoors-backend/api/middleware"
	"github.com/firedoors/firedoors-backend/internal/counterparties"
	"github.com/firedoors/firedoors-backend/internal/orders"
	"github.com/firedoors/firedoors-backend/internal/shipments"
	"github.com/firedoors/firedoors-backend/pkg/config"
	"github.com/firedoors/firedoors-backend/pkg/db"
	"github.com/firedoors/firedoors-backend/pkg/logger"
	"github.com/firedoors/firedoors-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry *prometheus.Registry,
	ordersService orders.Service,
	shipmentsService shipments.Service,
	counterpartiesService counterparties.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(ordersService, cfg.Files, logg))
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Post("/{orderId}/upload", controllers.OrderReupload(ordersService, cfg.Files, logg))
			r.Get("/{orderId}/aggregates", controllers.OrderAggregates(ordersService, logg))
			r.Post("/{orderId}/workshop", controllers.OrderWorkshopAction(ordersService, logg))
		})
		r.Post("/order-items/{itemId}/status", controllers.OrderItemStatus(ordersService, logg))
		r.Post("/glass/{glassId}/status", controllers.GlassStatus(ordersService, logg))

		r.Route("/shipments", func(r chi.Router) {
			r.Post("/", controllers.ShipmentSave(shipmentsService, logg))
			r.Get("/", controllers.ShipmentDay(shipmentsService, logg))
			r.Get("/calendar", controllers.ShipmentCalendar(shipmentsService, logg))
			r.Delete("/{shipmentId}", controllers.ShipmentDelete(shipmentsService, logg))
			r.Post("/{shipmentId}/complete", controllers.ShipmentComplete(shipmentsService, logg))
		})

		r.Route("/counterparties", func(r chi.Router) {
			r.Post("/", controllers.CounterpartyCreate(counterpartiesService, logg))
			r.Get("/", controllers.CounterpartyList(counterpartiesService, logg))
			r.Get("/{counterpartyId}", controllers.CounterpartyDetail(counterpartiesService, logg))
		})
		r.Get("/legal-entities", controllers.LegalEntityList(counterpartiesService, logg))

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.InvoiceCreate(counterpartiesService, logg))
			r.Get("/", controllers.InvoiceList(counterpartiesService, logg))
			r.Get("/{invoiceId}", controllers.InvoiceDetail(counterpartiesService, logg))
			r.Post("/{invoiceId}/paid", controllers.InvoiceSetPaid(counterpartiesService, logg))
		})

		r.Get("/documents/contract-data", controllers.ContractData(counterpartiesService, logg))
	})

	return r
}
