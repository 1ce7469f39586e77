package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/pkg/enums"
)

// Shipment is one loading slot in the shipment calendar of a workshop.
type Shipment struct {
	ID       uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	OrderID  uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index"`
	Date     time.Time      `gorm:"column:date;not null;index"`
	TimeSlot string         `gorm:"column:time_slot;not null"`
	Workshop enums.Workshop `gorm:"column:workshop;type:text;not null"`

	CarBrand     string `gorm:"column:car_brand;not null;default:''"`
	CarNumber    string `gorm:"column:car_number;not null;default:''"`
	Comment      string `gorm:"column:comment;not null;default:''"`
	ShipmentMark string `gorm:"column:shipment_mark;not null;default:''"`
	Address      string `gorm:"column:address;not null;default:''"`
	Author       string `gorm:"column:author;not null;default:''"`

	Completed bool `gorm:"column:completed;not null;default:false"`

	Order *Order `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Shipment) TableName() string {
	return "shipments"
}
