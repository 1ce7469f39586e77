package counterparties

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db"
	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
)

// CounterpartyInput carries the fields of a new or edited counterparty. Which
// group is required depends on the type tag.
type CounterpartyInput struct {
	Type enums.CounterpartyType
	Name string
	INN  string

	KPP          string
	OGRN         string
	LegalAddress string
	BankName     string
	BIK          string
	Account      string
	CorrAccount  string
	Director     string

	PassportSeries   string
	PassportNumber   string
	PassportIssuedBy string
	PassportIssuedAt *time.Time

	Phone string
	Email string
}

// InvoiceInput carries a new invoice.
type InvoiceInput struct {
	Number         string
	CounterpartyID uuid.UUID
	LegalEntityID  uuid.UUID
	Amount         decimal.Decimal
	Date           time.Time
}

// Service defines counterparty and invoice operations.
type Service interface {
	CreateCounterparty(ctx context.Context, input CounterpartyInput) (*models.Counterparty, error)
	GetCounterparty(ctx context.Context, id uuid.UUID) (*models.Counterparty, error)
	ListCounterparties(ctx context.Context) ([]models.Counterparty, error)
	GetLegalEntity(ctx context.Context, id uuid.UUID) (*models.LegalEntity, error)
	ListLegalEntities(ctx context.Context) ([]models.LegalEntity, error)

	CreateInvoice(ctx context.Context, input InvoiceInput) (*models.Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	SetInvoicePaid(ctx context.Context, id uuid.UUID, paid bool) error
}

type service struct {
	repo Repository
}

// NewService builds a counterparties service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("counterparties repository required")
	}
	return &service{repo: repo}, nil
}

// validateInput checks the variant-specific required fields. The switch is
// exhaustive on purpose: an unknown tag is an error, never a fallthrough.
func validateInput(input CounterpartyInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "counterparty name required")
	}

	switch input.Type {
	case enums.CounterpartyLegalEntity:
		if input.INN == "" || input.KPP == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "legal counterparty requires inn and kpp")
		}
	case enums.CounterpartyEntrepreneur:
		if input.INN == "" || input.OGRN == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "entrepreneur requires inn and ogrn")
		}
	case enums.CounterpartyPerson:
		if input.PassportSeries == "" || input.PassportNumber == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "person requires passport series and number")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown counterparty type %q", input.Type))
	}
	return nil
}

func (s *service) CreateCounterparty(ctx context.Context, input CounterpartyInput) (*models.Counterparty, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	cp := &models.Counterparty{
		Type:             input.Type,
		Name:             input.Name,
		INN:              input.INN,
		KPP:              input.KPP,
		OGRN:             input.OGRN,
		LegalAddress:     input.LegalAddress,
		BankName:         input.BankName,
		BIK:              input.BIK,
		Account:          input.Account,
		CorrAccount:      input.CorrAccount,
		Director:         input.Director,
		PassportSeries:   input.PassportSeries,
		PassportNumber:   input.PassportNumber,
		PassportIssuedBy: input.PassportIssuedBy,
		PassportIssuedAt: input.PassportIssuedAt,
		Phone:            input.Phone,
		Email:            input.Email,
	}
	if err := s.repo.CreateCounterparty(ctx, cp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create counterparty")
	}
	return cp, nil
}

func (s *service) GetCounterparty(ctx context.Context, id uuid.UUID) (*models.Counterparty, error) {
	cp, err := s.repo.FindCounterparty(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "counterparty not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load counterparty")
	}
	return cp, nil
}

func (s *service) ListCounterparties(ctx context.Context) ([]models.Counterparty, error) {
	cps, err := s.repo.ListCounterparties(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list counterparties")
	}
	return cps, nil
}

func (s *service) GetLegalEntity(ctx context.Context, id uuid.UUID) (*models.LegalEntity, error) {
	entity, err := s.repo.FindLegalEntity(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "legal entity not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load legal entity")
	}
	return entity, nil
}

func (s *service) ListLegalEntities(ctx context.Context) ([]models.LegalEntity, error) {
	entities, err := s.repo.ListLegalEntities(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list legal entities")
	}
	return entities, nil
}

func (s *service) CreateInvoice(ctx context.Context, input InvoiceInput) (*models.Invoice, error) {
	if input.Number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice number required")
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice amount cannot be negative")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice date required")
	}

	if _, err := s.repo.FindCounterparty(ctx, input.CounterpartyID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "counterparty not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load counterparty")
	}
	if _, err := s.repo.FindLegalEntity(ctx, input.LegalEntityID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "legal entity not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load legal entity")
	}

	inv := &models.Invoice{
		Number:         input.Number,
		CounterpartyID: input.CounterpartyID,
		LegalEntityID:  input.LegalEntityID,
		Amount:         input.Amount,
		Date:           input.Date,
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("invoice %s already exists", input.Number))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	return inv, nil
}

func (s *service) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, err := s.repo.FindInvoice(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return inv, nil
}

func (s *service) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	invs, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return invs, nil
}

func (s *service) SetInvoicePaid(ctx context.Context, id uuid.UUID, paid bool) error {
	if _, err := s.repo.FindInvoice(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	if err := s.repo.MarkInvoicePaid(ctx, id, paid); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update invoice")
	}
	return nil
}
