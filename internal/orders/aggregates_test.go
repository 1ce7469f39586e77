package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	"github.com/firedoors/firedoors-backend/pkg/types"
)

func aggItem(kind enums.ItemKind, construction enums.Construction, qty int) models.OrderItem {
	k := kind
	return models.OrderItem{
		Kind:         &k,
		Construction: construction,
		Quantity:     qty,
		Status:       enums.ItemStatusQueued,
		Workshop:     enums.WorkshopNone,
	}
}

func TestComputeAggregatesDoorBuckets(t *testing.T) {
	single := aggItem(enums.ItemKindDoor, enums.ConstructionOld, 2)
	double := aggItem(enums.ItemKindDoor, enums.ConstructionNew, 1)
	double.ActiveTrim = "400"

	agg := ComputeAggregates([]models.OrderItem{single, double})
	assert.Equal(t, 2, agg.DoorsSingleOld)
	assert.Equal(t, 0, agg.DoorsSingleNew)
	assert.Equal(t, 1, agg.DoorsDoubleNew)
	assert.Equal(t, 0, agg.DoorsDoubleOld)
	assert.Equal(t, 3, agg.TotalQuantity)
}

func TestComputeAggregatesHatchesAndTransoms(t *testing.T) {
	agg := ComputeAggregates([]models.OrderItem{
		aggItem(enums.ItemKindHatch, enums.ConstructionOld, 1),
		aggItem(enums.ItemKindHatch, enums.ConstructionNew, 2),
		aggItem(enums.ItemKindTransom, enums.ConstructionOld, 3),
	})
	assert.Equal(t, 1, agg.HatchesOld)
	assert.Equal(t, 2, agg.HatchesNew)
	assert.Equal(t, 3, agg.Transoms)
}

func TestComputeAggregatesGateSizeThreshold(t *testing.T) {
	small := aggItem(enums.ItemKindGate, enums.ConstructionOld, 1)
	small.Width, small.Height = 2500, 2400

	wide := aggItem(enums.ItemKindGate, enums.ConstructionOld, 1)
	wide.Width, wide.Height = 3200, 2400

	tall := aggItem(enums.ItemKindGate, enums.ConstructionOld, 1)
	tall.Width, tall.Height = 2500, 3000

	agg := ComputeAggregates([]models.OrderItem{small, wide, tall})
	assert.Equal(t, 1, agg.GatesStandard)
	assert.Equal(t, 2, agg.GatesOversized)
}

func TestComputeAggregatesWicketsOutsideDoorBuckets(t *testing.T) {
	agg := ComputeAggregates([]models.OrderItem{
		aggItem(enums.ItemKindWicket, enums.ConstructionOld, 1),
	})
	assert.Zero(t, agg.DoorsSingleOld)
	assert.Equal(t, 1, agg.TotalQuantity)
}

func TestComputeAggregatesExcludesChangedRows(t *testing.T) {
	superseded := aggItem(enums.ItemKindDoor, enums.ConstructionOld, 5)
	superseded.Status = enums.ItemStatusChanged

	agg := ComputeAggregates([]models.OrderItem{
		superseded,
		aggItem(enums.ItemKindDoor, enums.ConstructionOld, 1),
	})
	assert.Equal(t, 1, agg.DoorsSingleOld)
	assert.Equal(t, 1, agg.TotalQuantity)
	assert.Equal(t, enums.ItemStatusQueued.Label(), agg.Status)
}

func TestComputeAggregatesGlassItems(t *testing.T) {
	withGlass := aggItem(enums.ItemKindDoor, enums.ConstructionOld, 1)
	withGlass.GlassSpec = types.GlassSpec{{Height: 600, Width: 400}: 1}

	agg := ComputeAggregates([]models.OrderItem{
		withGlass,
		aggItem(enums.ItemKindDoor, enums.ConstructionOld, 1),
	})
	assert.Equal(t, 1, agg.GlassItems)
}

func TestComputeAggregatesUnknownKindStillCounted(t *testing.T) {
	item := models.OrderItem{Quantity: 4, Status: enums.ItemStatusQueued}

	agg := ComputeAggregates([]models.OrderItem{item})
	assert.Equal(t, 4, agg.TotalQuantity)
	assert.Zero(t, agg.DoorsSingleOld+agg.DoorsSingleNew+agg.DoorsDoubleOld+agg.DoorsDoubleNew)
}

func TestDeriveStatusSingleAndMixed(t *testing.T) {
	queuedOnly := []models.OrderItem{
		aggItem(enums.ItemKindDoor, enums.ConstructionOld, 2),
	}
	assert.Equal(t, "в очереди", ComputeAggregates(queuedOnly).Status)

	running := aggItem(enums.ItemKindDoor, enums.ConstructionOld, 1)
	running.Status = enums.ItemStatusRunning
	mixed := append(queuedOnly, running)
	assert.Equal(t, StatusMixed, ComputeAggregates(mixed).Status)

	assert.Equal(t, "", ComputeAggregates(nil).Status)
}

func TestWorkshopIconPriority(t *testing.T) {
	item := func(ws enums.Workshop) models.OrderItem {
		it := aggItem(enums.ItemKindDoor, enums.ConstructionOld, 1)
		it.Workshop = ws
		return it
	}

	assert.Equal(t, "idle", ComputeAggregates([]models.OrderItem{item(enums.WorkshopNone)}).WorkshopIcon)
	assert.Equal(t, "line_1", ComputeAggregates([]models.OrderItem{item(enums.WorkshopLine1)}).WorkshopIcon)
	assert.Equal(t, "line_3", ComputeAggregates([]models.OrderItem{item(enums.WorkshopLine3)}).WorkshopIcon)
	assert.Equal(t, "combined", ComputeAggregates([]models.OrderItem{item(enums.WorkshopLine1), item(enums.WorkshopLine3)}).WorkshopIcon)
	assert.Equal(t, "paused", ComputeAggregates([]models.OrderItem{item(enums.WorkshopLine1), item(enums.WorkshopPaused)}).WorkshopIcon)
}
