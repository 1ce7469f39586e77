package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlassSpecEqual(t *testing.T) {
	a := GlassSpec{{Height: 860, Width: 300}: 2, {Height: 600, Width: 400}: 1}
	b := GlassSpec{{Height: 600, Width: 400}: 1, {Height: 860, Width: 300}: 2}
	require.True(t, a.Equal(b))

	b[GlassDim{Height: 860, Width: 300}] = 3
	require.False(t, a.Equal(b))

	require.True(t, GlassSpec{}.Equal(nil))
	require.False(t, a.Equal(nil))
}

func TestGlassSpecString(t *testing.T) {
	require.Equal(t, "нет", GlassSpec{}.String())

	spec := GlassSpec{{Height: 860, Width: 300}: 2, {Height: 600, Width: 400}: 1}
	require.Equal(t, "600x400 (1 шт.), 860x300 (2 шт.)", spec.String())
}

func TestGlassSpecJSONRoundTrip(t *testing.T) {
	spec := GlassSpec{{Height: 860, Width: 300}: 2, {Height: 600, Width: 400}: 1}

	data, err := json.Marshal(spec)
	require.NoError(t, err)
	require.JSONEq(t, `[{"height":600,"width":400,"count":1},{"height":860,"width":300,"count":2}]`, string(data))

	var restored GlassSpec
	require.NoError(t, json.Unmarshal(data, &restored))
	require.True(t, spec.Equal(restored))
}

func TestGlassSpecScan(t *testing.T) {
	var spec GlassSpec
	require.NoError(t, spec.Scan([]byte(`[{"height":860,"width":300,"count":2}]`)))
	require.Equal(t, 2, spec[GlassDim{Height: 860, Width: 300}])

	var fromString GlassSpec
	require.NoError(t, fromString.Scan(`[{"height":1,"width":2,"count":3}]`))
	require.Equal(t, 3, fromString[GlassDim{Height: 1, Width: 2}])

	var empty GlassSpec
	require.NoError(t, empty.Scan(nil))
	require.Len(t, empty, 0)

	value, err := spec.Value()
	require.NoError(t, err)
	require.JSONEq(t, `[{"height":860,"width":300,"count":2}]`, string(value.([]byte)))
}
