// Package schema holds the canonical per-sheet column layout used by the
// writer. The layout is data (columns.yaml) rather than insert calls spread
// across strategies.
package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"adsopt/domain/workbook"
)

//go:embed columns.yaml
var defaultLayout []byte

// Placement positions one derived column
type Placement struct {
	Column string `yaml:"column"`
	After  string `yaml:"after,omitempty"`
	At     string `yaml:"at,omitempty"` // "end" or "start"
}

// SheetSchema is the layout of one sheet
type SheetSchema struct {
	Placements []Placement `yaml:"placements"`
}

// Schema is the layout of the whole output workbook
type Schema struct {
	SheetOrder []string               `yaml:"sheet_order"`
	Sheets     map[string]SheetSchema `yaml:"sheets"`
}

// Parse reads a YAML layout
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse column schema: %w", err)
	}
	for sheet, ss := range s.Sheets {
		for _, p := range ss.Placements {
			if p.Column == "" {
				return nil, fmt.Errorf("sheet %q: placement without column", sheet)
			}
			if p.After != "" && p.At != "" {
				return nil, fmt.Errorf("sheet %q: column %q has both after and at", sheet, p.Column)
			}
			if p.At != "" && p.At != "end" && p.At != "start" {
				return nil, fmt.Errorf("sheet %q: column %q has unknown position %q", sheet, p.Column, p.At)
			}
		}
	}
	return &s, nil
}

// Default returns the embedded layout
func Default() (*Schema, error) {
	return Parse(defaultLayout)
}

// Order returns columns rearranged according to the sheet's placements.
// Placed columns that are absent from columns are ignored; anchors that are
// absent send the column to the end.
func (s *Schema) Order(sheet string, columns []string) []string {
	ss, ok := s.Sheets[sheet]
	if !ok || len(ss.Placements) == 0 {
		return append([]string(nil), columns...)
	}

	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	placed := make(map[string]bool)
	for _, p := range ss.Placements {
		if present[p.Column] {
			placed[p.Column] = true
		}
	}

	var order []string
	for _, c := range columns {
		if !placed[c] {
			order = append(order, c)
		}
	}

	var tail, head []string
	for _, p := range ss.Placements {
		if !placed[p.Column] {
			continue
		}
		switch {
		case p.At == "start":
			head = append(head, p.Column)
		case p.After != "" && indexOf(order, p.After) >= 0:
			i := indexOf(order, p.After)
			order = append(order[:i+1], append([]string{p.Column}, order[i+1:]...)...)
		default:
			tail = append(tail, p.Column)
		}
	}
	return append(append(head, order...), tail...)
}

// Apply returns the table with its columns in canonical order
func (s *Schema) Apply(t *workbook.Table) *workbook.Table {
	return t.WithOrder(s.Order(t.Name(), t.Columns()))
}

// SortSheets orders sheet names: configured sheets first in configured
// order, then the rest in their given order.
func (s *Schema) SortSheets(names []string) []string {
	given := make(map[string]bool, len(names))
	for _, n := range names {
		given[n] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, n := range s.SheetOrder {
		if given[n] && !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	for _, n := range names {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
