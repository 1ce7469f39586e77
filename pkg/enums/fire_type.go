package enums

// FireType is the fire-rating variant inferred from the product name.
type FireType string

const (
	FireTypeEI60       FireType = "ei-60"
	FireTypeEIS60      FireType = "eis-60"
	FireTypeEIWS60     FireType = "eiws-60"
	FireTypeTech       FireType = "tech"
	FireTypeRevision   FireType = "revision"
	FireTypeApartment  FireType = "apartment"
	FireTypeSingleLeaf FireType = "single_leaf"
)

// String implements fmt.Stringer.
func (t FireType) String() string {
	return string(t)
}
