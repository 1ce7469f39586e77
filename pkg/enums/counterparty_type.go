package enums

import "fmt"

// CounterpartyType discriminates the counterparty tagged union.
type CounterpartyType string

const (
	CounterpartyLegalEntity  CounterpartyType = "legal"
	CounterpartyEntrepreneur CounterpartyType = "entrepreneur"
	CounterpartyPerson       CounterpartyType = "person"
)

var validCounterpartyTypes = []CounterpartyType{
	CounterpartyLegalEntity,
	CounterpartyEntrepreneur,
	CounterpartyPerson,
}

// String implements fmt.Stringer.
func (t CounterpartyType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CounterpartyType.
func (t CounterpartyType) IsValid() bool {
	for _, candidate := range validCounterpartyTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCounterpartyType converts raw input into a CounterpartyType.
func ParseCounterpartyType(value string) (CounterpartyType, error) {
	for _, candidate := range validCounterpartyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid counterparty type %q", value)
}
