package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/api/responses"
	"github.com/firedoors/firedoors-backend/api/validators"
	"github.com/firedoors/firedoors-backend/internal/counterparties"
	"github.com/firedoors/firedoors-backend/internal/documents"
	"github.com/firedoors/firedoors-backend/pkg/db/models"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
	"github.com/firedoors/firedoors-backend/pkg/logger"
)

// ContractData assembles the placeholder map the external document generator
// fills into a contract template.
func ContractData(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "counterparties service unavailable"))
			return
		}

		query := r.URL.Query()

		entityID, err := uuid.Parse(strings.TrimSpace(query.Get("legal_entity_id")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid legal_entity_id"))
			return
		}
		counterpartyID, err := uuid.Parse(strings.TrimSpace(query.Get("counterparty_id")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid counterparty_id"))
			return
		}

		days, err := validators.ParseQueryInt(r, "days", 30, 1, 365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entity, err := svc.GetLegalEntity(r.Context(), entityID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cp, err := svc.GetCounterparty(r.Context(), counterpartyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var invoice *models.Invoice
		if raw := strings.TrimSpace(query.Get("invoice_id")); raw != "" {
			invoiceID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice_id"))
				return
			}
			invoice, err = svc.GetInvoice(r.Context(), invoiceID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		data, err := documents.BuildContractData(entity, cp, invoice, days, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, data)
	}
}
