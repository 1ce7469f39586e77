package counterparties

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a counterparties repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCounterparty(ctx context.Context, cp *models.Counterparty) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *repository) UpdateCounterparty(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Counterparty{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) FindCounterparty(ctx context.Context, id uuid.UUID) (*models.Counterparty, error) {
	var cp models.Counterparty
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cp).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) ListCounterparties(ctx context.Context) ([]models.Counterparty, error) {
	var cps []models.Counterparty
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cps).Error; err != nil {
		return nil, err
	}
	return cps, nil
}

func (r *repository) FindLegalEntity(ctx context.Context, id uuid.UUID) (*models.LegalEntity, error) {
	var entity models.LegalEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *repository) ListLegalEntities(ctx context.Context) ([]models.LegalEntity, error) {
	var entities []models.LegalEntity
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *repository) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) FindInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Counterparty").
		Preload("LegalEntity").
		Where("id = ?", id).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invs []models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Counterparty").
		Order("date DESC").
		Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *repository) MarkInvoicePaid(ctx context.Context, id uuid.UUID, paid bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Update("paid", paid).Error
}
