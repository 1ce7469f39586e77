package orderform

import (
	"strings"

	"github.com/firedoors/firedoors-backend/pkg/enums"
)

// Classification keywords are matched case-insensitively as substrings, first
// match in declaration order wins. Declaration order is the tie-break policy,
// so these stay slices, not maps.
var kindKeywords = []struct {
	keyword string
	kind    enums.ItemKind
}{
	{"дверь", enums.ItemKindDoor},
	{"люк", enums.ItemKindHatch},
	{"ворота", enums.ItemKindGate},
	{"калитка", enums.ItemKindWicket},
	{"фрамуга", enums.ItemKindTransom},
	{"добор", enums.ItemKindDobor},
}

var fireTypeKeywords = []struct {
	keyword  string
	fireType enums.FireType
}{
	{"ei-60", enums.FireTypeEI60},
	{"eis-60", enums.FireTypeEIS60},
	{"eiws-60", enums.FireTypeEIWS60},
	{"тех", enums.FireTypeTech},
	{"ревиз", enums.FireTypeRevision},
	{"кварт", enums.FireTypeApartment},
	{"однолист", enums.FireTypeSingleLeaf},
}

// constructionMarkers flag the modernized series; either alphabet occurs in
// the wild because form authors mix Cyrillic and Latin.
var constructionMarkers = []string{"-м", "-m"}

// ClassifyKind resolves the product category from the free-text name.
// No match is a valid outcome, not an error.
func ClassifyKind(name string) *enums.ItemKind {
	lowered := strings.ToLower(name)
	for _, entry := range kindKeywords {
		if strings.Contains(lowered, entry.keyword) {
			kind := entry.kind
			return &kind
		}
	}
	return nil
}

// ClassifyFireType resolves the fire-rating variant from the product name.
func ClassifyFireType(name string) *enums.FireType {
	lowered := strings.ToLower(name)
	for _, entry := range fireTypeKeywords {
		if strings.Contains(lowered, entry.keyword) {
			fireType := entry.fireType
			return &fireType
		}
	}
	return nil
}

// ClassifyConstruction returns the new-generation code iff the series marker
// is present in the name.
func ClassifyConstruction(name string) enums.Construction {
	lowered := strings.ToLower(name)
	for _, marker := range constructionMarkers {
		if strings.Contains(lowered, marker) {
			return enums.ConstructionNew
		}
	}
	return enums.ConstructionOld
}
