package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/firedoors/firedoors-backend/internal/counterparties"
	"github.com/firedoors/firedoors-backend/internal/orders"
	"github.com/firedoors/firedoors-backend/internal/shipments"
	"github.com/firedoors/firedoors-backend/pkg/config"
	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	"github.com/firedoors/firedoors-backend/pkg/logger"
	"github.com/firedoors/firedoors-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubOrdersService struct {
	list   func(ctx context.Context, params pagination.Params) (*orders.OrderListView, error)
	detail func(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

func (s stubOrdersService) Ingest(ctx context.Context, input orders.IngestInput) (*orders.IngestResult, error) {
	return &orders.IngestResult{}, nil
}

func (s stubOrdersService) ApplyWorkshopAction(ctx context.Context, input orders.WorkshopActionInput) error {
	return nil
}

func (s stubOrdersService) EditItem(ctx context.Context, input orders.EditItemInput) error {
	return nil
}

func (s stubOrdersService) SetGlassStatus(ctx context.Context, glassID uuid.UUID, status enums.GlassStatus) error {
	return nil
}

func (s stubOrdersService) GetAggregates(ctx context.Context, orderID uuid.UUID) (*orders.Aggregates, error) {
	return &orders.Aggregates{}, nil
}

func (s stubOrdersService) List(ctx context.Context, params pagination.Params) (*orders.OrderListView, error) {
	if s.list != nil {
		return s.list(ctx, params)
	}
	return &orders.OrderListView{}, nil
}

func (s stubOrdersService) Detail(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.detail != nil {
		return s.detail(ctx, orderID)
	}
	return &models.Order{ID: orderID}, nil
}

type stubShipmentsService struct{}

func (stubShipmentsService) Save(ctx context.Context, input shipments.SaveInput) (*models.Shipment, error) {
	return &models.Shipment{OrderID: input.OrderID}, nil
}

func (stubShipmentsService) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	return nil
}

func (stubShipmentsService) Complete(ctx context.Context, shipmentID uuid.UUID, actor string) (*shipments.CompleteResult, error) {
	return &shipments.CompleteResult{ShippedItems: 1}, nil
}

func (stubShipmentsService) Day(ctx context.Context, workshop enums.Workshop, day time.Time) ([]models.Shipment, error) {
	return nil, nil
}

func (stubShipmentsService) MonthCalendar(ctx context.Context, year, month int) (*shipments.Calendar, error) {
	return &shipments.Calendar{Year: year, Month: month}, nil
}

type stubCounterpartiesService struct{}

func (stubCounterpartiesService) CreateCounterparty(ctx context.Context, input counterparties.CounterpartyInput) (*models.Counterparty, error) {
	return &models.Counterparty{Name: input.Name}, nil
}

func (stubCounterpartiesService) GetCounterparty(ctx context.Context, id uuid.UUID) (*models.Counterparty, error) {
	return &models.Counterparty{ID: id, Type: enums.CounterpartyLegalEntity, INN: "5009876543"}, nil
}

func (stubCounterpartiesService) ListCounterparties(ctx context.Context) ([]models.Counterparty, error) {
	return nil, nil
}

func (stubCounterpartiesService) GetLegalEntity(ctx context.Context, id uuid.UUID) (*models.LegalEntity, error) {
	return &models.LegalEntity{ID: id}, nil
}

func (stubCounterpartiesService) ListLegalEntities(ctx context.Context) ([]models.LegalEntity, error) {
	return nil, nil
}

func (stubCounterpartiesService) CreateInvoice(ctx context.Context, input counterparties.InvoiceInput) (*models.Invoice, error) {
	return &models.Invoice{Number: input.Number}, nil
}

func (stubCounterpartiesService) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return &models.Invoice{ID: id}, nil
}

func (stubCounterpartiesService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return nil, nil
}

func (stubCounterpartiesService) SetInvoicePaid(ctx context.Context, id uuid.UUID, paid bool) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Env: "test", Port: "0"},
		Files: config.FilesConfig{MaxUploadMB: 5},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		prometheus.NewRegistry(),
		stubOrdersService{},
		stubShipmentsService{},
		stubCounterpartiesService{},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Firedoors-Env"); got != "test" {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}

func TestOrderListRoute(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for order list got %d", resp.Code)
	}
}

func TestOrderDetailRejectsMalformedID(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed order id got %d", resp.Code)
	}
}

func TestWorkshopActionRejectsUnknownAction(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"action":"explode","author":"test"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/workshop", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action got %d", resp.Code)
	}
}

func TestWorkshopActionAcceptsKnownAction(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"action":"line_1","author":"test"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/workshop", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for workshop action got %d", resp.Code)
	}
}

func TestShipmentSaveRejectsBadDate(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"order_id":"` + uuid.NewString() + `","date":"14.03.2026","time_slot":"10:00","workshop":"line_1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad shipment date got %d", resp.Code)
	}
}

func TestShipmentSaveCreates(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"order_id":"` + uuid.NewString() + `","date":"2026-03-14","time_slot":"10:00","workshop":"line_1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for new shipment got %d", resp.Code)
	}
}

func TestCounterpartyCreateRejectsUnknownType(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"type":"partnership","name":"Т-во"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/counterparties", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown counterparty type got %d", resp.Code)
	}
}

func TestContractDataRequiresIDs(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/contract-data", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without entity ids got %d", resp.Code)
	}
}

func TestContractDataRoute(t *testing.T) {
	router := newTestRouter(testConfig())
	target := "/api/v1/documents/contract-data?legal_entity_id=" + uuid.NewString() +
		"&counterparty_id=" + uuid.NewString() + "&days=21"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for contract data got %d", resp.Code)
	}
}
