package shipments

import (
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/pkg/enums"
)

// SaveInput creates a shipment slot, or edits one when ShipmentID is set.
type SaveInput struct {
	ShipmentID *uuid.UUID
	OrderID    uuid.UUID
	Date       time.Time
	TimeSlot   string
	Workshop   enums.Workshop

	CarBrand     string
	CarNumber    string
	Comment      string
	ShipmentMark string
	Address      string
	Author       string
}

// CalendarDay is one day cell of the month rollup.
type CalendarDay struct {
	Date         string `json:"date"`
	Line1Count   int    `json:"line_1_count"`
	Line3Count   int    `json:"line_3_count"`
	HasShipments bool   `json:"has_shipments"`
	IsWeekend    bool   `json:"is_weekend"`
}

// Calendar is the month rollup of shipment slots per workshop and day.
type Calendar struct {
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Days       []CalendarDay `json:"days"`
	Line1Total int           `json:"line_1_total"`
	Line3Total int           `json:"line_3_total"`
	Total      int           `json:"total"`
}

// CompleteResult reports what completing a shipment did.
type CompleteResult struct {
	ShippedItems int `json:"shipped_items"`
}
