package orders

import (
	"fmt"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
)

// allowedTransitions is the authoritative status transition table.
// shipped, canceled and changed are terminal: they have no outgoing edges.
var allowedTransitions = map[enums.ItemStatus][]enums.ItemStatus{
	enums.ItemStatusQueued:  {enums.ItemStatusRunning, enums.ItemStatusReady, enums.ItemStatusStopped, enums.ItemStatusCanceled},
	enums.ItemStatusRunning: {enums.ItemStatusQueued, enums.ItemStatusReady, enums.ItemStatusStopped, enums.ItemStatusCanceled},
	enums.ItemStatusStopped: {enums.ItemStatusQueued, enums.ItemStatusRunning, enums.ItemStatusCanceled},
	enums.ItemStatusReady:   {enums.ItemStatusRunning, enums.ItemStatusShipped},
}

// CanTransition reports whether the status move is legal. Staying in place is
// always allowed so repeated submissions stay idempotent.
func CanTransition(from, to enums.ItemStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition applies a status change to the item after consulting the table.
func Transition(item *models.OrderItem, to enums.ItemStatus) error {
	if !CanTransition(item.Status, to) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("transition %s -> %s is not allowed", item.Status, to)).
			WithDetails(map[string]any{"item_id": item.ID, "from": item.Status.String(), "to": to.String()})
	}
	item.Status = to
	return nil
}

// WorkshopAction is one of the whole-order bulk transitions.
type WorkshopAction string

const (
	ActionLine1 WorkshopAction = "line_1"
	ActionLine3 WorkshopAction = "line_3"
	ActionPause WorkshopAction = "pause"
	ActionReady WorkshopAction = "ready"
)

var validWorkshopActions = []WorkshopAction{ActionLine1, ActionLine3, ActionPause, ActionReady}

// ParseWorkshopAction converts raw input into a WorkshopAction.
func ParseWorkshopAction(value string) (WorkshopAction, error) {
	for _, candidate := range validWorkshopActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid workshop action %q", value))
}

// targetFor maps a bulk action onto the resulting status and workshop.
// A nil workshop means the action leaves the workshop untouched.
func targetFor(action WorkshopAction) (enums.ItemStatus, *enums.Workshop) {
	switch action {
	case ActionLine1:
		ws := enums.WorkshopLine1
		return enums.ItemStatusRunning, &ws
	case ActionLine3:
		ws := enums.WorkshopLine3
		return enums.ItemStatusRunning, &ws
	case ActionPause:
		ws := enums.WorkshopPaused
		return enums.ItemStatusStopped, &ws
	case ActionReady:
		return enums.ItemStatusReady, nil
	}
	return "", nil
}

// actionComment is the natural-language history line for a bulk action.
func actionComment(action WorkshopAction) string {
	status, _ := targetFor(action)
	return fmt.Sprintf("статус заказа изменен на %q", status.Label())
}

// ApplyBulkAction applies a bulk workshop action to the item. Items for which
// the resulting status transition is illegal are left untouched and reported
// via the boolean.
func ApplyBulkAction(item *models.OrderItem, action WorkshopAction) (bool, error) {
	status, workshop := targetFor(action)
	if status == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid workshop action %q", action))
	}
	if !CanTransition(item.Status, status) {
		return false, nil
	}
	item.Status = status
	if workshop != nil {
		item.Workshop = *workshop
	}
	return true, nil
}

// EditFromQueueView is the single-item edit as triggered from the production
// queue: workshop=paused forces stopped, and a resulting stopped/canceled
// status forces workshop=paused.
func EditFromQueueView(item *models.OrderItem, status enums.ItemStatus, workshop enums.Workshop) error {
	if workshop == enums.WorkshopPaused {
		status = enums.ItemStatusStopped
	}
	if status == enums.ItemStatusStopped || status == enums.ItemStatusCanceled {
		workshop = enums.WorkshopPaused
	}
	if err := Transition(item, status); err != nil {
		return err
	}
	item.Workshop = workshop
	return nil
}

// EditFromOrderDetailView is the single-item edit as triggered from the order
// detail page: values are applied exactly as given, no coupling.
func EditFromOrderDetailView(item *models.OrderItem, status enums.ItemStatus, workshop enums.Workshop) error {
	if err := Transition(item, status); err != nil {
		return err
	}
	item.Workshop = workshop
	return nil
}
