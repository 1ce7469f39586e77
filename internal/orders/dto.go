package orders

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	"github.com/firedoors/firedoors-backend/pkg/types"
)

// MissingPositionPolicy decides what happens to persisted positions that a
// re-upload no longer contains.
type MissingPositionPolicy string

const (
	// MissingPositionKeep leaves absent positions untouched.
	MissingPositionKeep MissingPositionPolicy = "keep"
	// MissingPositionMarkChanged supersedes absent positions by marking
	// them changed.
	MissingPositionMarkChanged MissingPositionPolicy = "mark_changed"
)

// IngestInput carries an order-form upload. A nil OrderID creates a fresh
// order; a set one reconciles the upload against the existing items.
type IngestInput struct {
	OrderID       *uuid.UUID
	Number        string
	InvoiceID     *uuid.UUID
	DueDate       *time.Time
	Comment       string
	File          io.Reader
	FileName      string
	Actor         string
	MissingPolicy MissingPositionPolicy
}

// IngestResult reports what an upload did.
type IngestResult struct {
	Order     *models.Order `json:"order"`
	Created   bool          `json:"created"`
	Changes   string        `json:"changes,omitempty"`
	ItemCount int           `json:"item_count"`
}

// ItemCandidate is a parsed and classified order line, ready to be diffed
// against a persisted item or inserted as one.
type ItemCandidate struct {
	PositionNum  string
	Name         string
	Kind         *enums.ItemKind
	FireType     *enums.FireType
	Construction enums.Construction
	Width        int
	Height       int
	ActiveTrim   string
	OpenSide     string
	Platband     string
	Furniture    string
	DoorCloser   string
	Step         string
	RAL          string
	Quantity     int
	Comment      string
	Glass        types.GlassSpec
}

// EditOrigin distinguishes the two single-item edit operations, which apply
// different status/workshop defaulting.
type EditOrigin string

const (
	EditOriginQueue       EditOrigin = "queue"
	EditOriginOrderDetail EditOrigin = "order_detail"
)

// EditItemInput is a single-item status/workshop edit.
type EditItemInput struct {
	ItemID   uuid.UUID
	Status   enums.ItemStatus
	Workshop enums.Workshop
	Origin   EditOrigin
	Actor    string
}

// WorkshopActionInput is a whole-order bulk transition.
type WorkshopActionInput struct {
	OrderID uuid.UUID
	Action  WorkshopAction
	Actor   string
}

// OrderSummary is one row of the paginated order list.
type OrderSummary struct {
	ID           uuid.UUID  `json:"id"`
	Number       string     `json:"number"`
	CreatedAt    time.Time  `json:"created_at"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Status       string     `json:"status"`
	WorkshopIcon string     `json:"workshop_icon"`
	Quantity     int        `json:"quantity"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []models.Order `json:"-"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderListView is the serialized order list.
type OrderListView struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
