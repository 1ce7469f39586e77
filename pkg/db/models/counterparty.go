package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/pkg/enums"
)

// Counterparty is the customer side of an invoice, stored as a tagged union:
// the Type tag decides which field group is meaningful. Consumers must switch
// exhaustively on the tag and reject unknown values.
type Counterparty struct {
	ID   uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Type enums.CounterpartyType `gorm:"column:type;type:text;not null"`
	Name string                 `gorm:"column:name;not null"`
	INN  string                 `gorm:"column:inn;not null;default:''"`

	// legal / entrepreneur requisites
	KPP          string `gorm:"column:kpp;not null;default:''"`
	OGRN         string `gorm:"column:ogrn;not null;default:''"`
	LegalAddress string `gorm:"column:legal_address;not null;default:''"`
	BankName     string `gorm:"column:bank_name;not null;default:''"`
	BIK          string `gorm:"column:bik;not null;default:''"`
	Account      string `gorm:"column:account;not null;default:''"`
	CorrAccount  string `gorm:"column:corr_account;not null;default:''"`
	Director     string `gorm:"column:director;not null;default:''"`

	// person passport data
	PassportSeries   string     `gorm:"column:passport_series;not null;default:''"`
	PassportNumber   string     `gorm:"column:passport_number;not null;default:''"`
	PassportIssuedBy string     `gorm:"column:passport_issued_by;not null;default:''"`
	PassportIssuedAt *time.Time `gorm:"column:passport_issued_at"`

	Phone string `gorm:"column:phone;not null;default:''"`
	Email string `gorm:"column:email;not null;default:''"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Counterparty) TableName() string {
	return "counterparties"
}
