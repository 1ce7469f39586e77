package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	"github.com/firedoors/firedoors-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their children.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, params pagination.Params) (*OrderList, error)

	FindActiveItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	FindItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error)
	CreateItem(ctx context.Context, item *models.OrderItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	UpdateItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error

	CreateGlassInfos(ctx context.Context, glasses []models.GlassInfo) error
	FindGlass(ctx context.Context, glassID uuid.UUID) (*models.GlassInfo, error)
	UpdateGlassStatus(ctx context.Context, glassID uuid.UUID, status enums.GlassStatus) error

	CreateChangeHistory(ctx context.Context, entry *models.OrderChangeHistory) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
