package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	"github.com/firedoors/firedoors-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("status <> ?", enums.ItemStatusChanged).Order("position_num ASC")
		}).
		Preload("Items.Glasses").
		Preload("Changes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, params pagination.Params) (*OrderList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("status <> ?", enums.ItemStatusChanged)
		}).
		Order("created_at DESC, id DESC").
		Limit(limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	list := &OrderList{}
	pageSize := pagination.NormalizeLimit(params.Limit)
	if len(orders) > pageSize {
		orders = orders[:pageSize]
		last := orders[len(orders)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	list.Orders = orders
	return list, nil
}

func (r *repository) FindActiveItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Glasses").
		Where("order_id = ? AND status <> ?", orderID, enums.ItemStatusChanged).
		Order("position_num ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Glasses").
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	// glass rows are owned by the item; cascade explicitly so sqlite test
	// databases without FK enforcement behave like production
	if err := r.db.WithContext(ctx).
		Where("order_item_id = ?", itemID).
		Delete(&models.GlassInfo{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.OrderItem{}).Error
}

func (r *repository) UpdateItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *repository) CreateGlassInfos(ctx context.Context, glasses []models.GlassInfo) error {
	if len(glasses) == 0 {
		return nil
	}
	for i := range glasses {
		if glasses[i].ID == uuid.Nil {
			glasses[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&glasses).Error
}

func (r *repository) FindGlass(ctx context.Context, glassID uuid.UUID) (*models.GlassInfo, error) {
	var glass models.GlassInfo
	err := r.db.WithContext(ctx).
		Where("id = ?", glassID).
		First(&glass).Error
	if err != nil {
		return nil, err
	}
	return &glass, nil
}

func (r *repository) UpdateGlassStatus(ctx context.Context, glassID uuid.UUID, status enums.GlassStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.GlassInfo{}).
		Where("id = ?", glassID).
		Update("status", status).Error
}

func (r *repository) CreateChangeHistory(ctx context.Context, entry *models.OrderChangeHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
