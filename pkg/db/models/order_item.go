package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/firedoors/firedoors-backend/pkg/enums"
	"github.com/firedoors/firedoors-backend/pkg/types"
)

// OrderItem is one manufactured unit-type entry within an order.
// PositionNum is the natural key for reconciliation: stable across
// re-uploads, unique within an order among active rows, but deliberately not
// the database identity — reconciliation replaces the whole row on change.
type OrderItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	PositionNum string    `gorm:"column:position_num;not null"`
	Name        string    `gorm:"column:name;not null;default:''"`

	Kind         *enums.ItemKind    `gorm:"column:kind;type:text"`
	FireType     *enums.FireType    `gorm:"column:fire_type;type:text"`
	Construction enums.Construction `gorm:"column:construction;type:text;not null;default:'SK'"`

	Width      int    `gorm:"column:width;not null;default:0"`
	Height     int    `gorm:"column:height;not null;default:0"`
	ActiveTrim string `gorm:"column:active_trim;not null;default:''"`
	OpenSide   string `gorm:"column:open_side;not null;default:''"`
	Platband   string `gorm:"column:platband;not null;default:''"`
	Furniture  string `gorm:"column:furniture;not null;default:''"`
	DoorCloser string `gorm:"column:door_closer;not null;default:''"`
	Step       string `gorm:"column:step;not null;default:''"`
	RAL        string `gorm:"column:ral;not null;default:''"`
	Quantity   int    `gorm:"column:quantity;not null;default:0"`
	Comment    string `gorm:"column:comment;not null;default:''"`

	MetalThickness string `gorm:"column:metal_thickness;not null;default:''"`
	VentGrate      string `gorm:"column:vent_grate;not null;default:''"`
	Deflector      string `gorm:"column:deflector;not null;default:''"`

	NameplateRange string `gorm:"column:nameplate_range;not null;default:''"`
	FirmPlate      bool   `gorm:"column:firm_plate;not null;default:false"`
	MountingPlate  string `gorm:"column:mounting_plate;not null;default:''"`

	GlassSpec types.GlassSpec `gorm:"column:glass_spec;type:jsonb"`

	Status   enums.ItemStatus `gorm:"column:status;type:text;not null;default:'queued'"`
	Workshop enums.Workshop   `gorm:"column:workshop;type:text;not null;default:'none'"`

	Glasses []GlassInfo `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// HasGlass reports whether the item carries at least one glass pane.
func (i OrderItem) HasGlass() bool {
	return len(i.GlassSpec) > 0
}

// IsActive reports whether the row has not been superseded by reconciliation.
func (i OrderItem) IsActive() bool {
	return i.Status != enums.ItemStatusChanged
}
