package orderform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/firedoors/firedoors-backend/pkg/enums"
)

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		name string
		want *enums.ItemKind
	}{
		{"Дверь ДПМ EI-60", kindPtr(enums.ItemKindDoor)},
		{"дверь противопожарная", kindPtr(enums.ItemKindDoor)},
		{"Люк ревизионный", kindPtr(enums.ItemKindHatch)},
		{"Ворота распашные", kindPtr(enums.ItemKindGate)},
		{"Калитка", kindPtr(enums.ItemKindWicket)},
		{"Фрамуга глухая", kindPtr(enums.ItemKindTransom)},
		{"Добор 100мм", kindPtr(enums.ItemKindDobor)},
		{"Перегородка", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := ClassifyKind(tt.name)
		if tt.want == nil {
			require.Nil(t, got, "name %q", tt.name)
			continue
		}
		require.NotNil(t, got, "name %q", tt.name)
		require.Equal(t, *tt.want, *got, "name %q", tt.name)
	}
}

func TestClassifyKindFirstMatchWins(t *testing.T) {
	// both "ворота" and "калитка" present: declaration order decides
	got := ClassifyKind("Ворота с калиткой")
	require.NotNil(t, got)
	require.Equal(t, enums.ItemKindGate, *got)
}

func TestClassifyFireType(t *testing.T) {
	tests := []struct {
		name string
		want *enums.FireType
	}{
		{"Дверь EI-60", fireTypePtr(enums.FireTypeEI60)},
		{"Дверь EIS-60", fireTypePtr(enums.FireTypeEIS60)},
		{"Дверь EIWS-60", fireTypePtr(enums.FireTypeEIWS60)},
		{"Дверь техническая", fireTypePtr(enums.FireTypeTech)},
		{"Люк ревизионный", fireTypePtr(enums.FireTypeRevision)},
		{"Дверь квартирная", fireTypePtr(enums.FireTypeApartment)},
		{"Дверь однолистовая", fireTypePtr(enums.FireTypeSingleLeaf)},
		{"Ворота", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := ClassifyFireType(tt.name)
		if tt.want == nil {
			require.Nil(t, got, "name %q", tt.name)
			continue
		}
		require.NotNil(t, got, "name %q", tt.name)
		require.Equal(t, *tt.want, *got, "name %q", tt.name)
	}
}

func TestClassifyConstruction(t *testing.T) {
	require.Equal(t, enums.ConstructionNew, ClassifyConstruction("Дверь EI-60 -М"))
	require.Equal(t, enums.ConstructionNew, ClassifyConstruction("Дверь EI-60 -m"))
	require.Equal(t, enums.ConstructionOld, ClassifyConstruction("Дверь EI-60"))
	require.Equal(t, enums.ConstructionOld, ClassifyConstruction(""))
}

func TestClassificationScenario(t *testing.T) {
	name := "Дверь EI-60 -М"
	kind := ClassifyKind(name)
	fireType := ClassifyFireType(name)
	require.NotNil(t, kind)
	require.NotNil(t, fireType)
	require.Equal(t, enums.ItemKindDoor, *kind)
	require.Equal(t, enums.FireTypeEI60, *fireType)
	require.Equal(t, enums.ConstructionNew, ClassifyConstruction(name))

	require.Nil(t, ClassifyFireType("Ворота"))
}

func kindPtr(k enums.ItemKind) *enums.ItemKind {
	return &k
}

func fireTypePtr(t enums.FireType) *enums.FireType {
	return &t
}
