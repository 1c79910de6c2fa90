package strategies

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"adsopt/domain/core"
	"adsopt/domain/workbook"
)

var (
	pureInteger     = regexp.MustCompile(`^[0-9]+$`)
	numericWithZero = regexp.MustCompile(`^[0-9]+\.0$`)
)

// missingTokens are spellings that mean "no value" in exported sheets
var missingTokens = map[string]bool{
	"":      true,
	"nan":   true,
	"none":  true,
	"null":  true,
	"<nil>": true,
}

// normalizeID trims an identifier cell, maps every missing spelling to "" and
// drops the trailing ".0" spreadsheets add to integer ids.
func normalizeID(v workbook.Value) string {
	s := strings.TrimSpace(v.String())
	if missingTokens[strings.ToLower(s)] {
		return ""
	}
	if numericWithZero.MatchString(s) {
		s = strings.TrimSuffix(s, ".0")
	}
	return s
}

// isPureInteger reports whether s is a non-negative integer string
func isPureInteger(s string) bool {
	return pureInteger.MatchString(strings.TrimSpace(s))
}

func entityIs(kind string) func(workbook.Row) bool {
	return func(r workbook.Row) bool {
		return strings.EqualFold(strings.TrimSpace(r.Get(ColEntity).String()), kind)
	}
}

func containsExact(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	lower := strings.ToLower(s)
	for _, item := range list {
		if strings.Contains(lower, strings.ToLower(item)) {
			return true
		}
	}
	return false
}

// requireColumns returns one message per missing sheet or column
func requireColumns(wb *workbook.Workbook, sheet string, columns ...string) []string {
	tbl, ok := wb.Sheet(sheet)
	if !ok {
		return []string{fmt.Sprintf("missing required sheet %q", sheet)}
	}
	var msgs []string
	for _, c := range columns {
		if !tbl.HasColumn(c) {
			msgs = append(msgs, fmt.Sprintf("missing required column %q in sheet %q", c, sheet))
		}
	}
	return msgs
}

// coerceNumeric blanks non-numeric cells of the given columns and reports each one
func coerceNumeric(tbl *workbook.Table, columns ...string) (*workbook.Table, []string) {
	var problems []string
	out := tbl.Map(func(r workbook.Row) workbook.Row {
		for _, c := range columns {
			v := r.Get(c)
			if v.IsEmpty() {
				continue
			}
			if _, ok := v.Float(); !ok {
				problems = append(problems, core.NewDataError(r.Ref.Sheet, r.Ref.Pos, c, fmt.Sprintf("%q is not numeric", v.String())).Error())
				r = r.With(c, workbook.Empty())
			}
		}
		return r
	})
	return out, problems
}

func intText(n int) workbook.Value {
	return workbook.Text(strconv.Itoa(n))
}
