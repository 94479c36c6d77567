package rowstore

import (
	"fmt"
	"strings"
)

// Schema resolves header names to column indices, case-insensitively.
// It is built once per table read and reused for every row access, and
// missing required columns surface before any row is touched.
type Schema struct {
	header []string
	index  map[string]int
}

// NewSchema builds a schema from a header row. When the same name appears
// twice the first occurrence wins.
func NewSchema(header []string) *Schema {
	s := &Schema{header: header, index: make(map[string]int, len(header))}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := s.index[key]; !exists {
			s.index[key] = i
		}
	}
	return s
}

// Header returns the header row the schema was built from.
func (s *Schema) Header() []string {
	return s.header
}

// Col returns the column index for a header name.
func (s *Schema) Col(name string) (int, bool) {
	i, ok := s.index[strings.ToLower(strings.TrimSpace(name))]
	return i, ok
}

// Require fails when any of the named columns is absent. A missing required
// column is a configuration error: the whole operation aborts before any row
// is touched.
func (s *Schema) Require(table string, names ...string) error {
	for _, name := range names {
		if _, ok := s.Col(name); !ok {
			return fmt.Errorf("table %s: required column %q not found", table, name)
		}
	}
	return nil
}

// Value reads the named cell from a row, tolerating short rows.
func (s *Schema) Value(row []string, name string) string {
	i, ok := s.Col(name)
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Set writes the named cell into a row, growing the row to header width if
// needed, and returns the (possibly reallocated) row.
func (s *Schema) Set(row []string, name, value string) []string {
	i, ok := s.Col(name)
	if !ok {
		return row
	}
	for len(row) <= i {
		row = append(row, "")
	}
	row[i] = value
	return row
}

// EnsureColumns returns the header extended with any of the required names
// not already present, appended in the given order. Existing columns keep
// their positions, which is what lets locally-added columns survive a
// catalog refresh.
func EnsureColumns(header []string, required []string) []string {
	out := make([]string, len(header))
	copy(out, header)
	s := NewSchema(header)
	for _, name := range required {
		if _, ok := s.Col(name); !ok {
			out = append(out, name)
		}
	}
	return out
}
