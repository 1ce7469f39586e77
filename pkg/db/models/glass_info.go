package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/pkg/enums"
)

// GlassInfo is one distinct pane specification within an order item. Rows are
// owned exclusively by their item and regenerated whenever the parent's glass
// spec changes.
type GlassInfo struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrderItemID uuid.UUID         `gorm:"column:order_item_id;type:uuid;not null;index"`
	Height      int               `gorm:"column:height;not null"`
	Width       int               `gorm:"column:width;not null"`
	Depth       *int              `gorm:"column:depth"`
	Count       int               `gorm:"column:count;not null"`
	Status      enums.GlassStatus `gorm:"column:status;type:text;not null;default:'not_ordered'"`
	Comment     string            `gorm:"column:comment;not null;default:''"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (GlassInfo) TableName() string {
	return "glass_info"
}
