// Package workbook holds the in-memory multi-sheet model every optimization
// works on. All operations return new values and leave their inputs untouched.
package workbook

// Workbook is an ordered set of named tables
type Workbook struct {
	order  []string
	sheets map[string]*Table
}

// New builds a workbook from tables, in the given order
func New(tables ...*Table) *Workbook {
	w := &Workbook{sheets: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if _, exists := w.sheets[t.Name()]; !exists {
			w.order = append(w.order, t.Name())
		}
		w.sheets[t.Name()] = t
	}
	return w
}

// Sheet returns the named table (get_sheet)
func (w *Workbook) Sheet(name string) (*Table, bool) {
	t, ok := w.sheets[name]
	return t, ok
}

// SheetNames returns the sheet names in order
func (w *Workbook) SheetNames() []string { return append([]string(nil), w.order...) }

// Tables returns the tables in order
func (w *Workbook) Tables() []*Table {
	out := make([]*Table, 0, len(w.order))
	for _, n := range w.order {
		out = append(out, w.sheets[n])
	}
	return out
}

// WithSheet returns a workbook where t replaces the sheet of the same name,
// or is appended when no such sheet exists. Tables are immutable so the
// untouched ones are shared.
func (w *Workbook) WithSheet(t *Table) *Workbook {
	out := &Workbook{
		order:  append([]string(nil), w.order...),
		sheets: make(map[string]*Table, len(w.sheets)+1),
	}
	for k, v := range w.sheets {
		out.sheets[k] = v
	}
	if _, exists := out.sheets[t.Name()]; !exists {
		out.order = append(out.order, t.Name())
	}
	out.sheets[t.Name()] = t
	return out
}

// Only returns a workbook restricted to the named sheets that exist
func (w *Workbook) Only(names ...string) *Workbook {
	var tables []*Table
	for _, n := range names {
		if t, ok := w.sheets[n]; ok {
			tables = append(tables, t)
		}
	}
	return New(tables...)
}

// MaxRows is the row count of the largest sheet
func (w *Workbook) MaxRows() int {
	max := 0
	for _, t := range w.sheets {
		if t.Len() > max {
			max = t.Len()
		}
	}
	return max
}

// Clone deep-copies every sheet
func (w *Workbook) Clone() *Workbook {
	tables := make([]*Table, 0, len(w.order))
	for _, n := range w.order {
		tables = append(tables, w.sheets[n].Clone())
	}
	return New(tables...)
}
