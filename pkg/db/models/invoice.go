package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice links a production order to the paying counterparty and the
// internal legal entity that issued it.
type Invoice struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Number         string          `gorm:"column:number;not null;uniqueIndex"`
	CounterpartyID uuid.UUID       `gorm:"column:counterparty_id;type:uuid;not null"`
	LegalEntityID  uuid.UUID       `gorm:"column:legal_entity_id;type:uuid;not null"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Paid           bool            `gorm:"column:paid;not null;default:false"`
	Date           time.Time       `gorm:"column:date;not null"`

	Counterparty *Counterparty `gorm:"foreignKey:CounterpartyID"`
	LegalEntity  *LegalEntity  `gorm:"foreignKey:LegalEntityID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Invoice) TableName() string {
	return "invoices"
}
