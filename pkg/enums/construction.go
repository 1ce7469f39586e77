package enums

// Construction is the structural design generation, inferred from the "-м"
// series marker in the product name. Stored codes mirror the plant's series
// markers: NK for the modernized line, SK for the legacy one.
type Construction string

const (
	ConstructionNew Construction = "NK"
	ConstructionOld Construction = "SK"
)

// String implements fmt.Stringer.
func (c Construction) String() string {
	return string(c)
}
