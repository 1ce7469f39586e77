package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/firedoors/firedoors-backend/api/responses"
	"github.com/firedoors/firedoors-backend/api/validators"
	"github.com/firedoors/firedoors-backend/internal/counterparties"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
	"github.com/firedoors/firedoors-backend/pkg/logger"
)

type counterpartyRequest struct {
	Type string `json:"type" validate:"required"`
	Name string `json:"name" validate:"required"`
	INN  string `json:"inn"`

	KPP          string `json:"kpp"`
	OGRN         string `json:"ogrn"`
	LegalAddress string `json:"legal_address"`
	BankName     string `json:"bank_name"`
	BIK          string `json:"bik"`
	Account      string `json:"account"`
	CorrAccount  string `json:"corr_account"`
	Director     string `json:"director"`

	PassportSeries   string `json:"passport_series"`
	PassportNumber   string `json:"passport_number"`
	PassportIssuedBy string `json:"passport_issued_by"`
	PassportIssuedAt string `json:"passport_issued_at"`

	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (req counterpartyRequest) toInput() (counterparties.CounterpartyInput, error) {
	cpType, err := enums.ParseCounterpartyType(req.Type)
	if err != nil {
		return counterparties.CounterpartyInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid counterparty type")
	}

	input := counterparties.CounterpartyInput{
		Type:             cpType,
		Name:             req.Name,
		INN:              req.INN,
		KPP:              req.KPP,
		OGRN:             req.OGRN,
		LegalAddress:     req.LegalAddress,
		BankName:         req.BankName,
		BIK:              req.BIK,
		Account:          req.Account,
		CorrAccount:      req.CorrAccount,
		Director:         req.Director,
		PassportSeries:   req.PassportSeries,
		PassportNumber:   req.PassportNumber,
		PassportIssuedBy: req.PassportIssuedBy,
		Phone:            req.Phone,
		Email:            req.Email,
	}

	if req.PassportIssuedAt != "" {
		issued, err := time.Parse("2006-01-02", req.PassportIssuedAt)
		if err != nil {
			return counterparties.CounterpartyInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid passport_issued_at, expected YYYY-MM-DD")
		}
		input.PassportIssuedAt = &issued
	}

	return input, nil
}

// CounterpartyCreate registers a customer of any of the three variants.
func CounterpartyCreate(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		var payload counterpartyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cp, err := svc.CreateCounterparty(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cp)
	}
}

// CounterpartyList returns every counterparty ordered by name.
func CounterpartyList(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		cps, err := svc.ListCounterparties(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cps)
	}
}

// CounterpartyDetail returns one counterparty by ID.
func CounterpartyDetail(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		id, err := parseIDParam(r, "counterpartyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cp, err := svc.GetCounterparty(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cp)
	}
}

// LegalEntityList returns the plant's own legal entities.
func LegalEntityList(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		entities, err := svc.ListLegalEntities(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entities)
	}
}

type invoiceRequest struct {
	Number         string    `json:"number" validate:"required"`
	CounterpartyID uuid.UUID `json:"counterparty_id" validate:"required"`
	LegalEntityID  uuid.UUID `json:"legal_entity_id" validate:"required"`
	Amount         string    `json:"amount" validate:"required"`
	Date           string    `json:"date" validate:"required"`
}

// InvoiceCreate issues an invoice from one of the plant's legal entities.
func InvoiceCreate(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		var payload invoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount"))
			return
		}
		date, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date, expected YYYY-MM-DD"))
			return
		}

		inv, err := svc.CreateInvoice(r.Context(), counterparties.InvoiceInput{
			Number:         payload.Number,
			CounterpartyID: payload.CounterpartyID,
			LegalEntityID:  payload.LegalEntityID,
			Amount:         amount,
			Date:           date,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, inv)
	}
}

// InvoiceList returns invoices newest first.
func InvoiceList(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		invs, err := svc.ListInvoices(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invs)
	}
}

// InvoiceDetail returns one invoice with its counterparty and legal entity.
func InvoiceDetail(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		id, err := parseIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inv, err := svc.GetInvoice(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inv)
	}
}

type invoicePaidRequest struct {
	Paid *bool `json:"paid" validate:"required"`
}

// InvoiceSetPaid flips the paid flag of an invoice.
func InvoiceSetPaid(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		id, err := parseIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload invoicePaidRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetInvoicePaid(r.Context(), id, *payload.Paid); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
