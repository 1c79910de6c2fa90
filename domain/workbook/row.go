package workbook

import "fmt"

// RowRef identifies a row by its sheet and its data-row position at load time.
// It is stable for one run only.
type RowRef struct {
	Sheet string
	Pos   int
}

func (r RowRef) String() string {
	return fmt.Sprintf("%s#%d", r.Sheet, r.Pos)
}

// Row is an immutable mapping of column name to Value
type Row struct {
	Ref    RowRef
	values map[string]Value
}

// NewRow copies values into a new row
func NewRow(ref RowRef, values map[string]Value) Row {
	cp := make(map[string]Value, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Row{Ref: ref, values: cp}
}

// Get returns the cell value, Empty if the column is absent
func (r Row) Get(column string) Value {
	return r.values[column]
}

// Has reports whether the column has been set on this row
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// With returns a copy of the row with column set to v
func (r Row) With(column string, v Value) Row {
	out := r.Clone()
	out.values[column] = v
	return out
}

// WithAll returns a copy of the row with every entry of updates applied
func (r Row) WithAll(updates map[string]Value) Row {
	out := r.Clone()
	for k, v := range updates {
		out.values[k] = v
	}
	return out
}

// Clone deep-copies the row
func (r Row) Clone() Row {
	return NewRow(r.Ref, r.values)
}

// Values returns a copy of the row's cells
func (r Row) Values() map[string]Value {
	cp := make(map[string]Value, len(r.values))
	for k, v := range r.values {
		cp[k] = v
	}
	return cp
}

// DiffColumns lists the columns present in both rows whose values differ
func (r Row) DiffColumns(other Row, columns []string) []string {
	var diff []string
	for _, c := range columns {
		if !r.Has(c) || !other.Has(c) {
			continue
		}
		if !r.Get(c).Equal(other.Get(c)) {
			diff = append(diff, c)
		}
	}
	return diff
}
