package orderform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/firedoors/firedoors-backend/pkg/types"
)

func TestAggregateGlassCountsPairs(t *testing.T) {
	spec := AggregateGlass([]string{"860", "300", "860", "300", "600", "400"})
	require.Equal(t, types.GlassSpec{
		{Height: 860, Width: 300}: 2,
		{Height: 600, Width: 400}: 1,
	}, spec)
}

func TestAggregateGlassDropsDanglingTail(t *testing.T) {
	// five cells produce exactly two pairs, the fifth value is ignored
	spec := AggregateGlass([]string{"860", "300", "600", "400", "500"})
	require.Len(t, spec, 2)
	require.Equal(t, 1, spec[types.GlassDim{Height: 860, Width: 300}])
	require.Equal(t, 1, spec[types.GlassDim{Height: 600, Width: 400}])
}

func TestAggregateGlassDropsEmptyPair(t *testing.T) {
	spec := AggregateGlass([]string{"860", "300", "", ""})
	require.Equal(t, types.GlassSpec{{Height: 860, Width: 300}: 1}, spec)

	require.Empty(t, AggregateGlass([]string{"", ""}))
	require.Empty(t, AggregateGlass(nil))
}

func TestAggregateGlassKeepsHalfEmptyPair(t *testing.T) {
	// a pair with one missing dimension stays in the multiset; it is only
	// filtered later when seeding glass_info rows
	spec := AggregateGlass([]string{"860", ""})
	require.Equal(t, types.GlassSpec{{Height: 860, Width: 0}: 1}, spec)
}

func TestParseIntTolerance(t *testing.T) {
	require.Equal(t, 900, ParseInt("900"))
	require.Equal(t, 2100, ParseInt(" 2100 "))
	require.Equal(t, 2100, ParseInt("2100,0"))
	require.Equal(t, 0, ParseInt(""))
	require.Equal(t, 0, ParseInt("шт."))
}
