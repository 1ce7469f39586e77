package shipments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
)

// Repository defines persistence operations for shipment slots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, shipment *models.Shipment) error
	Update(ctx context.Context, shipmentID uuid.UUID, updates map[string]any) error
	Find(ctx context.Context, shipmentID uuid.UUID) (*models.Shipment, error)
	Delete(ctx context.Context, shipmentID uuid.UUID) error

	ListDay(ctx context.Context, workshop enums.Workshop, day time.Time) ([]models.Shipment, error)
	CountByDay(ctx context.Context, workshop enums.Workshop, from, to time.Time) (map[string]int, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
