package enums

import "fmt"

// Workshop identifies the production line currently owning an item.
// Paused is modeled as a workshop value, mirroring the plant floor where a
// paused item physically sits on the buffer line between line 1 and line 3.
type Workshop string

const (
	WorkshopNone   Workshop = "none"
	WorkshopLine1  Workshop = "line_1"
	WorkshopPaused Workshop = "paused"
	WorkshopLine3  Workshop = "line_3"
)

var validWorkshops = []Workshop{
	WorkshopNone,
	WorkshopLine1,
	WorkshopPaused,
	WorkshopLine3,
}

// String implements fmt.Stringer.
func (w Workshop) String() string {
	return string(w)
}

// IsValid reports whether the value is a known Workshop.
func (w Workshop) IsValid() bool {
	for _, candidate := range validWorkshops {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWorkshop converts raw input into a Workshop.
func ParseWorkshop(value string) (Workshop, error) {
	for _, candidate := range validWorkshops {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid workshop %q", value)
}
