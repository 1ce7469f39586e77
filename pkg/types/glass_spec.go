package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// GlassDim is one distinct glass pane dimension. Zero means the source cell
// was empty.
type GlassDim struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// GlassSpec is the multiset of pane dimensions within one order item,
// mapping each distinct (height, width) to its count.
type GlassSpec map[GlassDim]int

type glassSpecEntry struct {
	Height int `json:"height"`
	Width  int `json:"width"`
	Count  int `json:"count"`
}

// Equal reports whether both multisets contain the same pane counts.
func (s GlassSpec) Equal(other GlassSpec) bool {
	if len(s) != len(other) {
		return false
	}
	for dim, count := range s {
		if other[dim] != count {
			return false
		}
	}
	return true
}

// Entries returns the multiset as a slice sorted by height then width, so
// serialized specs and display strings are deterministic.
func (s GlassSpec) Entries() []glassSpecEntry {
	entries := make([]glassSpecEntry, 0, len(s))
	for dim, count := range s {
		entries = append(entries, glassSpecEntry{Height: dim.Height, Width: dim.Width, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Height != entries[j].Height {
			return entries[i].Height < entries[j].Height
		}
		return entries[i].Width < entries[j].Width
	})
	return entries
}

// String renders the spec the way it appears in changelog text, e.g.
// `860x300 (2 шт.)`, or `нет` when the item carries no glass.
func (s GlassSpec) String() string {
	if len(s) == 0 {
		return "нет"
	}
	parts := make([]string, 0, len(s))
	for _, e := range s.Entries() {
		parts = append(parts, fmt.Sprintf("%dx%d (%d шт.)", e.Height, e.Width, e.Count))
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON serializes the multiset as a sorted array of entries.
func (s GlassSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

// UnmarshalJSON restores the multiset from the entry array form.
func (s *GlassSpec) UnmarshalJSON(data []byte) error {
	var entries []glassSpecEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	spec := make(GlassSpec, len(entries))
	for _, e := range entries {
		spec[GlassDim{Height: e.Height, Width: e.Width}] += e.Count
	}
	*s = spec
	return nil
}

// Value implements driver.Valuer for the jsonb column.
func (s GlassSpec) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Scan implements sql.Scanner.
func (s *GlassSpec) Scan(value any) error {
	if value == nil {
		*s = GlassSpec{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported glass spec source type %T", value)
	}
	if len(data) == 0 {
		*s = GlassSpec{}
		return nil
	}
	return s.UnmarshalJSON(data)
}
