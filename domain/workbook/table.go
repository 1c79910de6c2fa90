package workbook

// Table is one named sheet: an ordered column list and ordered rows.
// Tables are never modified after construction; every operation returns a new Table.
type Table struct {
	name    string
	columns []string
	rows    []Row
}

// NewTable builds a table from rows that already carry their refs
func NewTable(name string, columns []string, rows []Row) *Table {
	t := &Table{
		name:    name,
		columns: append([]string(nil), columns...),
		rows:    make([]Row, len(rows)),
	}
	for i, r := range rows {
		t.rows[i] = r.Clone()
	}
	return t
}

// FromRecords builds a table from a header and string records, assigning each
// row the ref (name, position).
func FromRecords(name string, header []string, records [][]string) *Table {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		values := make(map[string]Value, len(header))
		for j, col := range header {
			if col == "" {
				continue
			}
			if j < len(rec) {
				values[col] = Text(rec[j])
			} else {
				values[col] = Empty()
			}
		}
		rows = append(rows, Row{Ref: RowRef{Sheet: name, Pos: i}, values: values})
	}

	var cols []string
	for _, c := range header {
		if c != "" {
			cols = append(cols, c)
		}
	}
	return &Table{name: name, columns: cols, rows: rows}
}

// Name returns the sheet name
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the ordered column list
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// HasColumn reports whether the column exists
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len is the number of rows
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th row
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns a copy of the row slice. Rows are values and safe to keep.
func (t *Table) Rows() []Row { return append([]Row(nil), t.rows...) }

// RowByRef finds the row carrying ref
func (t *Table) RowByRef(ref RowRef) (Row, bool) {
	for _, r := range t.rows {
		if r.Ref == ref {
			return r, true
		}
	}
	return Row{}, false
}

// Refs returns the refs of every row in order
func (t *Table) Refs() []RowRef {
	out := make([]RowRef, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Ref
	}
	return out
}

// Filter keeps the rows matching pred. Refs are preserved.
func (t *Table) Filter(pred func(Row) bool) *Table {
	var kept []Row
	for _, r := range t.rows {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	return NewTable(t.name, t.columns, kept)
}

// CountMatching returns, for every row of t in order, how many rows of other
// share its key. key extracts the key from t's rows, otherKey from other's rows.
// Rows whose key is empty never match.
func (t *Table) CountMatching(other *Table, key, otherKey func(Row) string) []int {
	counts := make(map[string]int)
	if other != nil {
		for _, r := range other.rows {
			if k := otherKey(r); k != "" {
				counts[k]++
			}
		}
	}
	out := make([]int, len(t.rows))
	for i, r := range t.rows {
		if k := key(r); k != "" {
			out[i] = counts[k]
		}
	}
	return out
}

// AssignColumn returns a table where column holds fn(row) for every row.
// The column is appended when it does not exist yet.
func (t *Table) AssignColumn(column string, fn func(Row) Value) *Table {
	out := t.WithColumns(column)
	for i, r := range out.rows {
		out.rows[i] = r.With(column, fn(r))
	}
	return out
}

// WithColumns returns a table with the missing columns appended as empty cells
func (t *Table) WithColumns(columns ...string) *Table {
	out := t.Clone()
	for _, c := range columns {
		if out.HasColumn(c) {
			continue
		}
		out.columns = append(out.columns, c)
		for i, r := range out.rows {
			if !r.Has(c) {
				out.rows[i] = r.With(c, Empty())
			}
		}
	}
	return out
}

// Map returns a table with fn applied to every row. fn must keep the row's Ref.
func (t *Table) Map(fn func(Row) Row) *Table {
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = fn(r)
	}
	return NewTable(t.name, t.columns, rows)
}

// Renamed returns a copy of the table under a different sheet name. Row refs
// keep pointing to the source sheet.
func (t *Table) Renamed(name string) *Table {
	out := t.Clone()
	out.name = name
	return out
}

// WithOrder returns a copy whose column list is replaced by order
func (t *Table) WithOrder(order []string) *Table {
	out := t.Clone()
	out.columns = append([]string(nil), order...)
	return out
}

// Values collects the column's cells in row order
func (t *Table) Values(column string) []Value {
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Get(column)
	}
	return out
}

// Clone deep-copies the table
func (t *Table) Clone() *Table {
	return NewTable(t.name, t.columns, t.rows)
}
