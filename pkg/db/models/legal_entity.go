package models

import (
	"time"

	"github.com/google/uuid"
)

// LegalEntity is one of the plant's own legal entities that issues invoices
// and signs contracts.
type LegalEntity struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	INN         string    `gorm:"column:inn;not null"`
	KPP         string    `gorm:"column:kpp;not null;default:''"`
	OGRN        string    `gorm:"column:ogrn;not null;default:''"`
	Address     string    `gorm:"column:address;not null;default:''"`
	BankName    string    `gorm:"column:bank_name;not null;default:''"`
	BIK         string    `gorm:"column:bik;not null;default:''"`
	Account     string    `gorm:"column:account;not null;default:''"`
	CorrAccount string    `gorm:"column:corr_account;not null;default:''"`
	Director    string    `gorm:"column:director;not null;default:''"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LegalEntity) TableName() string {
	return "legal_entities"
}
