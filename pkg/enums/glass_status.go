package enums

import "fmt"

// GlassStatus tracks fulfillment of a single glass pane specification.
type GlassStatus string

const (
	GlassStatusNotOrdered GlassStatus = "not_ordered"
	GlassStatusOrdered    GlassStatus = "ordered"
	GlassStatusFabricated GlassStatus = "fabricated"
	GlassStatusReceived   GlassStatus = "received"
)

var validGlassStatuses = []GlassStatus{
	GlassStatusNotOrdered,
	GlassStatusOrdered,
	GlassStatusFabricated,
	GlassStatusReceived,
}

// String implements fmt.Stringer.
func (s GlassStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known GlassStatus.
func (s GlassStatus) IsValid() bool {
	for _, candidate := range validGlassStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseGlassStatus converts raw input into a GlassStatus.
func ParseGlassStatus(value string) (GlassStatus, error) {
	for _, candidate := range validGlassStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid glass status %q", value)
}
