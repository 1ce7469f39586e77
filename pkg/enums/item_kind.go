package enums

// ItemKind is the product category inferred from the free-text product name.
type ItemKind string

const (
	ItemKindDoor    ItemKind = "door"
	ItemKindHatch   ItemKind = "hatch"
	ItemKindGate    ItemKind = "gate"
	ItemKindWicket  ItemKind = "wicket"
	ItemKindTransom ItemKind = "transom"
	ItemKindDobor   ItemKind = "dobor"
)

var itemKindLabels = map[ItemKind]string{
	ItemKindDoor:    "дверь",
	ItemKindHatch:   "люк",
	ItemKindGate:    "ворота",
	ItemKindWicket:  "калитка",
	ItemKindTransom: "фрамуга",
	ItemKindDobor:   "добор",
}

// String implements fmt.Stringer.
func (k ItemKind) String() string {
	return string(k)
}

// Label is the Russian display name used in changelog text.
func (k ItemKind) Label() string {
	return itemKindLabels[k]
}
