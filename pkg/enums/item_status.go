package enums

import "fmt"

// ItemStatus tracks the production lifecycle of an order item.
type ItemStatus string

const (
	ItemStatusQueued   ItemStatus = "queued"
	ItemStatusRunning  ItemStatus = "running"
	ItemStatusReady    ItemStatus = "ready"
	ItemStatusShipped  ItemStatus = "shipped"
	ItemStatusStopped  ItemStatus = "stopped"
	ItemStatusCanceled ItemStatus = "canceled"
	// ItemStatusChanged marks rows superseded by reconciliation. Terminal,
	// excluded from every active-item view.
	ItemStatusChanged ItemStatus = "changed"
)

var validItemStatuses = []ItemStatus{
	ItemStatusQueued,
	ItemStatusRunning,
	ItemStatusReady,
	ItemStatusShipped,
	ItemStatusStopped,
	ItemStatusCanceled,
	ItemStatusChanged,
}

var itemStatusLabels = map[ItemStatus]string{
	ItemStatusQueued:   "в очереди",
	ItemStatusRunning:  "запущен",
	ItemStatusReady:    "готов",
	ItemStatusShipped:  "отгружен",
	ItemStatusStopped:  "остановлен",
	ItemStatusCanceled: "отменен",
}

// String implements fmt.Stringer.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ItemStatus.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s ItemStatus) IsTerminal() bool {
	return s == ItemStatusShipped || s == ItemStatusCanceled || s == ItemStatusChanged
}

// Label returns the Russian display label shown on production dashboards.
func (s ItemStatus) Label() string {
	return itemStatusLabels[s]
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}
