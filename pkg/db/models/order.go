package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a production order created from an uploaded order form.
// Its overall status and workshop icon are always derived from the current
// items, never stored.
type Order struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Number    string     `gorm:"column:number;not null;uniqueIndex"`
	InvoiceID *uuid.UUID `gorm:"column:invoice_id;type:uuid"`
	DueDate   *time.Time `gorm:"column:due_date"`
	Comment   string     `gorm:"column:comment;not null;default:''"`
	// FilePath references the stored workbook in the blob store. Opaque,
	// never interpreted beyond reopening for the changelog write-back.
	FilePath string `gorm:"column:file_path;not null;default:''"`

	Items   []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Changes []OrderChangeHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
