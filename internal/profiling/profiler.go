// Package profiling summarizes numeric bulk-sheet columns for the run report.
package profiling

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
)

// Targets lists the columns to profile per sheet
type Targets map[string][]string

// ProfileWorkbook profiles every target column present in wb, in sheet order
func ProfileWorkbook(wb *workbook.Workbook, targets Targets) []optimization.ColumnProfile {
	var profiles []optimization.ColumnProfile
	for _, name := range wb.SheetNames() {
		columns, ok := targets[name]
		if !ok {
			continue
		}
		t, _ := wb.Sheet(name)
		for _, col := range columns {
			if !t.HasColumn(col) {
				continue
			}
			if p, ok := ProfileColumn(t, col); ok {
				profiles = append(profiles, p)
			}
		}
	}
	return profiles
}

// ProfileColumn summarizes the numeric cells of column. Cells that do not
// parse as numbers count as missing. ok is false when no cell is numeric.
func ProfileColumn(t *workbook.Table, column string) (optimization.ColumnProfile, bool) {
	profile := optimization.ColumnProfile{Sheet: t.Name(), Column: column}

	var data []float64
	for _, v := range t.Values(column) {
		f, ok := v.Float()
		if !ok {
			profile.Missing++
			continue
		}
		data = append(data, f)
	}
	profile.Count = len(data)
	if len(data) == 0 {
		return profile, false
	}

	// errors only occur for empty input
	profile.Mean, _ = stats.Mean(data)
	profile.Min, _ = stats.Min(data)
	profile.Max, _ = stats.Max(data)
	profile.Median, _ = stats.Median(data)

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	profile.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	profile.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)

	if len(data) > 1 {
		profile.StdDev = stat.StdDev(data, nil)
	}
	if len(data) > 2 && profile.StdDev > 0 {
		profile.Skewness = stat.Skew(data, nil)
	}
	profile.Outliers = countOutliers(data, profile.Q25, profile.Q75)
	return profile, true
}

// countOutliers uses the 1.5 IQR fences
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower, upper := q25-1.5*iqr, q75+1.5*iqr

	n := 0
	for _, x := range data {
		if x < lower || x > upper {
			n++
		}
	}
	return n
}
