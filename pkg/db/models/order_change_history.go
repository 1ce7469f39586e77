package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderChangeHistory is an immutable audit record: one row per re-upload that
// produced at least one detected difference, or per bulk workshop transition.
type OrderChangeHistory struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	// PreviousFilePath keeps the superseded workbook for reference.
	PreviousFilePath string `gorm:"column:previous_file_path;not null;default:''"`
	Author           string `gorm:"column:author;not null;default:''"`
	Comment          string `gorm:"column:comment;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OrderChangeHistory) TableName() string {
	return "order_change_history"
}
