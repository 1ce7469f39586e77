package orders

import (
	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
)

// gateSizeThreshold splits gates into standard and oversized buckets.
const gateSizeThreshold = 3000

// StatusMixed is the derived order status when active items sit in more than
// one production status at once.
const StatusMixed = "частично не готов"

// Aggregates is the read-only rollup of an order's active line items. It is
// recomputed from current item state on every read, never stored.
type Aggregates struct {
	DoorsSingleOld int `json:"doors_single_old"`
	DoorsSingleNew int `json:"doors_single_new"`
	DoorsDoubleOld int `json:"doors_double_old"`
	DoorsDoubleNew int `json:"doors_double_new"`
	HatchesOld     int `json:"hatches_old"`
	HatchesNew     int `json:"hatches_new"`

	GatesStandard  int `json:"gates_standard"`
	GatesOversized int `json:"gates_oversized"`
	Transoms       int `json:"transoms"`

	GlassItems    int `json:"glass_items"`
	TotalQuantity int `json:"total_quantity"`

	Status       string `json:"status"`
	WorkshopIcon string `json:"workshop_icon"`
}

// ComputeAggregates rolls up the given items. Rows with status changed are
// excluded before anything is counted.
func ComputeAggregates(items []models.OrderItem) Aggregates {
	var agg Aggregates
	byStatus := map[enums.ItemStatus]int{}
	workshops := map[enums.Workshop]bool{}

	for i := range items {
		item := &items[i]
		if !item.IsActive() {
			continue
		}

		agg.TotalQuantity += item.Quantity
		byStatus[item.Status] += item.Quantity
		workshops[item.Workshop] = true
		if item.HasGlass() {
			agg.GlassItems++
		}

		if item.Kind == nil {
			continue
		}
		isNew := item.Construction == enums.ConstructionNew
		switch *item.Kind {
		case enums.ItemKindDoor:
			double := item.ActiveTrim != ""
			switch {
			case double && isNew:
				agg.DoorsDoubleNew += item.Quantity
			case double:
				agg.DoorsDoubleOld += item.Quantity
			case isNew:
				agg.DoorsSingleNew += item.Quantity
			default:
				agg.DoorsSingleOld += item.Quantity
			}
		case enums.ItemKindHatch:
			if isNew {
				agg.HatchesNew += item.Quantity
			} else {
				agg.HatchesOld += item.Quantity
			}
		case enums.ItemKindGate:
			if item.Width < gateSizeThreshold && item.Height < gateSizeThreshold {
				agg.GatesStandard += item.Quantity
			} else {
				agg.GatesOversized += item.Quantity
			}
		case enums.ItemKindTransom:
			agg.Transoms += item.Quantity
		}
	}

	agg.Status = deriveStatus(byStatus)
	agg.WorkshopIcon = workshopIcon(workshops)
	return agg
}

// deriveStatus maps quantity-weighted status presence onto a single display
// status: exactly one status present uses its label, more than one falls into
// the mixed bucket, no items at all yields empty.
func deriveStatus(byStatus map[enums.ItemStatus]int) string {
	var present []enums.ItemStatus
	for status, qty := range byStatus {
		if qty > 0 {
			present = append(present, status)
		}
	}
	switch len(present) {
	case 0:
		return ""
	case 1:
		return present[0].Label()
	default:
		return StatusMixed
	}
}

// workshopIcon picks the order's workshop icon with sequential overriding
// checks, the last matching check wins.
func workshopIcon(workshops map[enums.Workshop]bool) string {
	icon := "idle"
	if workshops[enums.WorkshopLine1] {
		icon = "line_1"
	}
	if workshops[enums.WorkshopLine3] {
		icon = "line_3"
	}
	if workshops[enums.WorkshopLine1] && workshops[enums.WorkshopLine3] {
		icon = "combined"
	}
	if workshops[enums.WorkshopPaused] {
		icon = "paused"
	}
	return icon
}
