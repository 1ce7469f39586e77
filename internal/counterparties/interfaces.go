package counterparties

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
)

// Repository defines persistence operations for counterparties, the plant's
// own legal entities, and invoices.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCounterparty(ctx context.Context, cp *models.Counterparty) error
	UpdateCounterparty(ctx context.Context, id uuid.UUID, updates map[string]any) error
	FindCounterparty(ctx context.Context, id uuid.UUID) (*models.Counterparty, error)
	ListCounterparties(ctx context.Context) ([]models.Counterparty, error)

	FindLegalEntity(ctx context.Context, id uuid.UUID) (*models.LegalEntity, error)
	ListLegalEntities(ctx context.Context) ([]models.LegalEntity, error)

	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	FindInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id uuid.UUID, paid bool) error
}
