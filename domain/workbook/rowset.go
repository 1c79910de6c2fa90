package workbook

import "sort"

// RowSet is a set of row references. Adding the same ref twice is a no-op.
type RowSet struct {
	refs map[RowRef]struct{}
}

// NewRowSet builds a set from refs
func NewRowSet(refs ...RowRef) RowSet {
	s := RowSet{refs: make(map[RowRef]struct{}, len(refs))}
	for _, r := range refs {
		s.refs[r] = struct{}{}
	}
	return s
}

// Add inserts ref. Only meant for a set that is still being built locally.
func (s *RowSet) Add(ref RowRef) {
	if s.refs == nil {
		s.refs = make(map[RowRef]struct{})
	}
	s.refs[ref] = struct{}{}
}

// Has reports membership
func (s RowSet) Has(ref RowRef) bool {
	_, ok := s.refs[ref]
	return ok
}

// Len is the number of distinct refs
func (s RowSet) Len() int { return len(s.refs) }

// Union returns a new set holding every ref of s and others
func (s RowSet) Union(others ...RowSet) RowSet {
	out := NewRowSet()
	for r := range s.refs {
		out.refs[r] = struct{}{}
	}
	for _, o := range others {
		for r := range o.refs {
			out.refs[r] = struct{}{}
		}
	}
	return out
}

// Intersect returns the refs present in both sets
func (s RowSet) Intersect(other RowSet) RowSet {
	out := NewRowSet()
	for r := range s.refs {
		if other.Has(r) {
			out.refs[r] = struct{}{}
		}
	}
	return out
}

// Refs returns the members ordered by sheet then position
func (s RowSet) Refs() []RowRef {
	out := make([]RowRef, 0, len(s.refs))
	for r := range s.refs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sheet != out[j].Sheet {
			return out[i].Sheet < out[j].Sheet
		}
		return out[i].Pos < out[j].Pos
	})
	return out
}

// Positions returns the sorted positions recorded for one sheet
func (s RowSet) Positions(sheet string) []int {
	var out []int
	for _, r := range s.Refs() {
		if r.Sheet == sheet {
			out = append(out, r.Pos)
		}
	}
	return out
}
