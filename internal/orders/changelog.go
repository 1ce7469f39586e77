package orders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/types"
)

// fieldDiff is one comparable field of an order line, with its display label.
type fieldDiff struct {
	label string
	old   string
	new   string
}

// diffFields lists the comparable fields in display order. Kind and fire type
// compare by enum value, everything else by the raw string form.
func diffFields(item *models.OrderItem, cand ItemCandidate) []fieldDiff {
	oldKind, newKind := "", ""
	if item.Kind != nil {
		oldKind = item.Kind.Label()
	}
	if cand.Kind != nil {
		newKind = cand.Kind.Label()
	}
	oldType, newType := "", ""
	if item.FireType != nil {
		oldType = item.FireType.String()
	}
	if cand.FireType != nil {
		newType = cand.FireType.String()
	}
	return []fieldDiff{
		{"вид изделия", oldKind, newKind},
		{"тип", oldType, newType},
		{"конструкция", string(item.Construction), string(cand.Construction)},
		{"ширина", strconv.Itoa(item.Width), strconv.Itoa(cand.Width)},
		{"высота", strconv.Itoa(item.Height), strconv.Itoa(cand.Height)},
		{"активная створка", item.ActiveTrim, cand.ActiveTrim},
		{"сторона открывания", item.OpenSide, cand.OpenSide},
		{"наличник", item.Platband, cand.Platband},
		{"фурнитура", item.Furniture, cand.Furniture},
		{"доводчик", item.DoorCloser, cand.DoorCloser},
		{"порог", item.Step, cand.Step},
		{"цвет RAL", item.RAL, cand.RAL},
		{"количество", strconv.Itoa(item.Quantity), strconv.Itoa(cand.Quantity)},
		{"комментарий", item.Comment, cand.Comment},
	}
}

// persistedGlass rebuilds the glass multiset from the item's glass rows.
func persistedGlass(item *models.OrderItem) types.GlassSpec {
	spec := types.GlassSpec{}
	for _, g := range item.Glasses {
		spec[types.GlassDim{Height: g.Height, Width: g.Width}] += g.Count
	}
	return spec
}

// DiffItem compares a persisted line against a freshly parsed candidate and
// renders the differences as changelog lines. The first change of a position
// carries the "поз. N:" prefix; subsequent changes of the same position do not.
func DiffItem(item *models.OrderItem, cand ItemCandidate) []string {
	var lines []string
	prefixed := false

	for _, f := range diffFields(item, cand) {
		if f.old == f.new {
			continue
		}
		switch {
		case f.old == "" || f.old == "0":
			lines = append(lines, fmt.Sprintf("поз. %s: добавлен %s %q;", item.PositionNum, f.label, f.new))
		case !prefixed:
			lines = append(lines, fmt.Sprintf("поз. %s: %s с %q на %q;", item.PositionNum, f.label, f.old, f.new))
			prefixed = true
		default:
			lines = append(lines, fmt.Sprintf("%s с %q на %q;", f.label, f.old, f.new))
		}
	}

	oldGlass := persistedGlass(item)
	if !oldGlass.Equal(cand.Glass) {
		lines = append(lines, fmt.Sprintf("поз. %s: изменено стекло с %q на %q;",
			item.PositionNum, oldGlass.String(), cand.Glass.String()))
	}
	return lines
}

// FormatChangelog joins per-position changelog lines into the history text.
func FormatChangelog(lines []string) string {
	return strings.Join(lines, " ")
}
