package workbook

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind discriminates the cell payload
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
)

// Value is a single cell: text, number, or empty.
// Text read from a file stays text so identifiers keep their exact spelling.
type Value struct {
	kind ValueKind
	text string
	num  float64
}

// Empty returns the missing value
func Empty() Value { return Value{} }

// Text wraps a string; blank strings become Empty
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Number wraps a float
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Int wraps an integer count
func Int(n int) Value { return Number(float64(n)) }

// Kind reports the payload type
func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether the cell is missing
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// String renders the value the way it is written back to a sheet
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float parses the value as a number
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		s := strings.TrimSpace(v.text)
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal compares rendered values, so Text("5") equals Number(5)
func (v Value) Equal(other Value) bool {
	if v.IsEmpty() || other.IsEmpty() {
		return v.IsEmpty() == other.IsEmpty()
	}
	return v.String() == other.String()
}
