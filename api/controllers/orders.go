package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/api/responses"
	"github.com/firedoors/firedoors-backend/api/validators"
	"github.com/firedoors/firedoors-backend/internal/orders"
	"github.com/firedoors/firedoors-backend/pkg/config"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
	"github.com/firedoors/firedoors-backend/pkg/logger"
	"github.com/firedoors/firedoors-backend/pkg/pagination"
)

const uploadFieldName = "file"

// OrderCreate accepts a multipart order-form upload and creates a new order.
func OrderCreate(svc orders.Service, files config.FilesConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		input, err := ingestInputFromMultipart(r, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if input.Number == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number is required"))
			return
		}

		result, err := svc.Ingest(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// OrderReupload reconciles a fresh upload against an existing order's items.
func OrderReupload(svc orders.Service, files config.FilesConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := ingestInputFromMultipart(r, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.OrderID = &orderID

		result, err := svc.Ingest(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ingestInputFromMultipart(r *http.Request, files config.FilesConfig) (orders.IngestInput, error) {
	maxBytes := int64(files.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return orders.IngestInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		return orders.IngestInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "order form file is required")
	}

	input := orders.IngestInput{
		Number:   strings.TrimSpace(r.FormValue("number")),
		Comment:  strings.TrimSpace(r.FormValue("comment")),
		Actor:    strings.TrimSpace(r.FormValue("author")),
		File:     file,
		FileName: header.Filename,
	}

	if raw := strings.TrimSpace(r.FormValue("due_date")); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return orders.IngestInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid due_date, expected YYYY-MM-DD")
		}
		input.DueDate = &due
	}

	if raw := strings.TrimSpace(r.FormValue("invoice_id")); raw != "" {
		invoiceID, err := uuid.Parse(raw)
		if err != nil {
			return orders.IngestInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice_id")
		}
		input.InvoiceID = &invoiceID
	}

	switch policy := strings.TrimSpace(r.FormValue("missing_policy")); policy {
	case "", string(orders.MissingPositionKeep):
		input.MissingPolicy = orders.MissingPositionKeep
	case string(orders.MissingPositionMarkChanged):
		input.MissingPolicy = orders.MissingPositionMarkChanged
	default:
		return orders.IngestInput{}, pkgerrors.New(pkgerrors.CodeValidation, "missing_policy must be keep or mark_changed")
	}

	return input, nil
}

// OrderList returns the paginated order list with per-order aggregates.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// OrderDetail returns one order with its active items and change history.
func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Detail(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderAggregates returns the quantity-weighted production rollup for an order.
func OrderAggregates(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		aggregates, err := svc.GetAggregates(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, aggregates)
	}
}

type workshopActionRequest struct {
	Action string `json:"action" validate:"required"`
	Author string `json:"author"`
}

// OrderWorkshopAction applies a bulk status transition to every item of an order.
func OrderWorkshopAction(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload workshopActionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := orders.ParseWorkshopAction(payload.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workshop action"))
			return
		}

		if err := svc.ApplyWorkshopAction(r.Context(), orders.WorkshopActionInput{
			OrderID: orderID,
			Action:  action,
			Actor:   payload.Author,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

type itemStatusRequest struct {
	Status   string `json:"status" validate:"required"`
	Workshop string `json:"workshop" validate:"required"`
	Origin   string `json:"origin" validate:"required,oneof=queue order_detail"`
	Author   string `json:"author"`
}

// OrderItemStatus edits the status/workshop pair of a single order item.
func OrderItemStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload itemStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseItemStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		workshop, err := enums.ParseWorkshop(payload.Workshop)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workshop"))
			return
		}

		if err := svc.EditItem(r.Context(), orders.EditItemInput{
			ItemID:   itemID,
			Status:   status,
			Workshop: workshop,
			Origin:   orders.EditOrigin(payload.Origin),
			Actor:    payload.Author,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

type glassStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GlassStatus updates the fulfillment status of one glass row.
func GlassStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		glassID, err := parseIDParam(r, "glassId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload glassStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseGlassStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid glass status"))
			return
		}

		if err := svc.SetGlassStatus(r.Context(), glassID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "id is required").WithDetails(map[string]any{"field": name})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").WithDetails(map[string]any{"field": name})
	}
	return id, nil
}
