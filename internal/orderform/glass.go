package orderform

import (
	"strconv"
	"strings"

	"github.com/firedoors/firedoors-backend/pkg/types"
)

// AggregateGlass pairs the flat glass tail positionally into (height, width)
// tuples, counts occurrences per distinct pair and drops the fully-empty
// pair. A dangling trailing value (odd tail) is ignored: pairing truncates to
// the shorter slice, which is accepted form behavior, not an error.
func AggregateGlass(cells []string) types.GlassSpec {
	spec := types.GlassSpec{}
	pairs := len(cells) / 2
	for i := 0; i < pairs; i++ {
		dim := types.GlassDim{
			Height: parseDimension(cells[2*i]),
			Width:  parseDimension(cells[2*i+1]),
		}
		if dim == (types.GlassDim{}) {
			continue
		}
		spec[dim]++
	}
	return spec
}

// parseDimension reads a glass cell as millimeters. Empty or non-numeric
// cells collapse to zero, the "missing dimension" value.
func parseDimension(cell string) int {
	cleaned := strings.TrimSpace(cell)
	if cleaned == "" {
		return 0
	}
	if n, err := strconv.Atoi(cleaned); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", "."), 64); err == nil {
		return int(f)
	}
	return 0
}

// ParseInt reads a numeric form cell (width, height, quantity) with the same
// tolerance as glass dimensions.
func ParseInt(cell string) int {
	return parseDimension(cell)
}
