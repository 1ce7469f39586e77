package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/api/responses"
	"github.com/firedoors/firedoors-backend/api/validators"
	"github.com/firedoors/firedoors-backend/internal/shipments"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
	"github.com/firedoors/firedoors-backend/pkg/logger"
)

type shipmentSaveRequest struct {
	ShipmentID   *uuid.UUID `json:"shipment_id,omitempty"`
	OrderID      uuid.UUID  `json:"order_id" validate:"required"`
	Date         string     `json:"date" validate:"required"`
	TimeSlot     string     `json:"time_slot" validate:"required"`
	Workshop     string     `json:"workshop" validate:"required"`
	CarBrand     string     `json:"car_brand"`
	CarNumber    string     `json:"car_number"`
	Comment      string     `json:"comment"`
	ShipmentMark string     `json:"shipment_mark"`
	Address      string     `json:"address"`
	Author       string     `json:"author"`
}

func (req shipmentSaveRequest) toInput() (shipments.SaveInput, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return shipments.SaveInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date, expected YYYY-MM-DD")
	}
	workshop, err := enums.ParseWorkshop(req.Workshop)
	if err != nil {
		return shipments.SaveInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workshop")
	}
	return shipments.SaveInput{
		ShipmentID:   req.ShipmentID,
		OrderID:      req.OrderID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Workshop:     workshop,
		CarBrand:     req.CarBrand,
		CarNumber:    req.CarNumber,
		Comment:      req.Comment,
		ShipmentMark: req.ShipmentMark,
		Address:      req.Address,
		Author:       req.Author,
	}, nil
}

// ShipmentSave creates a shipment slot, or edits one when shipment_id is set.
func ShipmentSave(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		var payload shipmentSaveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shipment, err := svc.Save(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if payload.ShipmentID == nil {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, shipment)
	}
}

// ShipmentDelete removes an uncompleted shipment slot.
func ShipmentDelete(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		shipmentID, err := parseIDParam(r, "shipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), shipmentID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

type shipmentCompleteRequest struct {
	Author string `json:"author"`
}

// ShipmentComplete ships every transitionable item of the slot's order.
func ShipmentComplete(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		shipmentID, err := parseIDParam(r, "shipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload shipmentCompleteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Complete(r.Context(), shipmentID, payload.Author)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ShipmentDay lists a production line's slots for one day, ordered by time slot.
func ShipmentDay(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		workshop, err := enums.ParseWorkshop(strings.TrimSpace(r.URL.Query().Get("workshop")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workshop"))
			return
		}

		day, err := time.Parse("2006-01-02", strings.TrimSpace(r.URL.Query().Get("date")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date, expected YYYY-MM-DD"))
			return
		}

		slots, err := svc.Day(r.Context(), workshop, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, slots)
	}
}

// ShipmentCalendar returns the month rollup of slots per workshop and day.
func ShipmentCalendar(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		now := time.Now()
		year, err := validators.ParseQueryInt(r, "year", now.Year(), 2000, 2100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		month, err := validators.ParseQueryInt(r, "month", int(now.Month()), 1, 12)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		calendar, err := svc.MonthCalendar(r.Context(), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, calendar)
	}
}
