package orchestrator

import (
	"sort"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
)

// indexUpdatedRows maps, per result, every updated ref to the row the
// strategy produced for it (first occurrence across its tables).
func indexUpdatedRows(results []optimization.StrategyResult) []map[workbook.RowRef]workbook.Row {
	index := make([]map[workbook.RowRef]workbook.Row, len(results))
	for i, res := range results {
		index[i] = make(map[workbook.RowRef]workbook.Row, res.Updated.Len())
		for _, t := range res.Tables {
			for _, row := range t.Rows() {
				if !res.Updated.Has(row.Ref) {
					continue
				}
				if _, seen := index[i][row.Ref]; !seen {
					index[i][row.Ref] = row
				}
			}
		}
	}
	return index
}

// detectConflicts finds refs updated by more than one strategy whose
// resulting rows disagree on a column both of them carry.
func detectConflicts(results []optimization.StrategyResult, index []map[workbook.RowRef]workbook.Row) []optimization.Conflict {
	owners := make(map[workbook.RowRef][]int)
	for i, res := range results {
		for _, ref := range res.Updated.Refs() {
			owners[ref] = append(owners[ref], i)
		}
	}

	var conflicts []optimization.Conflict
	for ref, idxs := range owners {
		if len(idxs) < 2 {
			continue
		}

		cols := make(map[string]bool)
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				ra, okA := index[idxs[a]][ref]
				rb, okB := index[idxs[b]][ref]
				if !okA || !okB {
					continue
				}
				for _, c := range ra.DiffColumns(rb, columnsOf(ra, rb)) {
					cols[c] = true
				}
			}
		}
		if len(cols) == 0 {
			continue
		}

		c := optimization.Conflict{Ref: ref}
		for _, i := range idxs {
			c.Strategies = append(c.Strategies, results[i].Strategy)
		}
		for col := range cols {
			c.Columns = append(c.Columns, col)
		}
		sort.Strings(c.Columns)
		conflicts = append(conflicts, c)
	}

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i].Ref, conflicts[j].Ref
		if a.Sheet != b.Sheet {
			return a.Sheet < b.Sheet
		}
		return a.Pos < b.Pos
	})
	return conflicts
}

// merge folds every result's tables into the input workbook in selection
// order. On an existing sheet, rows the strategy updated overwrite the
// current row; other rows only receive columns they do not have yet. New
// sheets are appended as they are.
func merge(wb *workbook.Workbook, results []optimization.StrategyResult) *workbook.Workbook {
	out := wb
	for _, res := range results {
		for _, t := range res.Tables {
			base, ok := out.Sheet(t.Name())
			if !ok {
				out = out.WithSheet(t)
				continue
			}
			out = out.WithSheet(mergeTable(base, t, res.Updated))
		}
	}
	return out
}

func mergeTable(base, patch *workbook.Table, updated workbook.RowSet) *workbook.Table {
	columns := base.Columns()
	for _, c := range patch.Columns() {
		if !base.HasColumn(c) {
			columns = append(columns, c)
		}
	}

	patchRows := make(map[workbook.RowRef]workbook.Row, patch.Len())
	for _, r := range patch.Rows() {
		if _, seen := patchRows[r.Ref]; !seen {
			patchRows[r.Ref] = r
		}
	}

	matched := make(map[workbook.RowRef]bool, patch.Len())
	rows := make([]workbook.Row, 0, base.Len())
	for _, r := range base.Rows() {
		p, ok := patchRows[r.Ref]
		if !ok {
			rows = append(rows, r)
			continue
		}
		matched[r.Ref] = true

		if updated.Has(r.Ref) {
			rows = append(rows, r.WithAll(p.Values()))
			continue
		}
		fill := make(map[string]workbook.Value)
		for _, c := range patch.Columns() {
			if !r.Has(c) {
				fill[c] = p.Get(c)
			}
		}
		rows = append(rows, r.WithAll(fill))
	}
	for _, r := range patch.Rows() {
		if !matched[r.Ref] {
			rows = append(rows, r)
			matched[r.Ref] = true
		}
	}
	return workbook.NewTable(base.Name(), columns, rows)
}

// applyLastWrite makes the last strategy of every conflict win in every
// sheet that carries the conflicting row.
func applyLastWrite(wb *workbook.Workbook, conflicts []optimization.Conflict, index []map[workbook.RowRef]workbook.Row, results []optimization.StrategyResult) *workbook.Workbook {
	if len(conflicts) == 0 {
		return wb
	}

	byName := make(map[string]int, len(results))
	for i, r := range results {
		byName[r.Strategy] = i
	}

	winners := make(map[workbook.RowRef]map[string]workbook.Value, len(conflicts))
	for _, c := range conflicts {
		last := byName[c.Strategies[len(c.Strategies)-1]]
		row := index[last][c.Ref]
		values := make(map[string]workbook.Value, len(c.Columns))
		for _, col := range c.Columns {
			if row.Has(col) {
				values[col] = row.Get(col)
			}
		}
		winners[c.Ref] = values
	}

	out := wb
	for _, t := range wb.Tables() {
		changed := false
		next := t.Map(func(r workbook.Row) workbook.Row {
			values, ok := winners[r.Ref]
			if !ok {
				return r
			}
			apply := make(map[string]workbook.Value)
			for col, v := range values {
				if t.HasColumn(col) && !r.Get(col).Equal(v) {
					apply[col] = v
				}
			}
			if len(apply) == 0 {
				return r
			}
			changed = true
			return r.WithAll(apply)
		})
		if changed {
			out = out.WithSheet(next)
		}
	}
	return out
}

func columnsOf(a, b workbook.Row) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range []workbook.Row{a, b} {
		for c := range r.Values() {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	sort.Strings(cols)
	return cols
}
