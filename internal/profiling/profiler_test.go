package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsopt/domain/workbook"
)

func budgetTable() *workbook.Table {
	return workbook.FromRecords("Sponsored Products Campaigns",
		[]string{"Campaign ID", "Daily Budget", "ACOS"},
		[][]string{
			{"C1", "10", "12%"},
			{"C2", "20", ""},
			{"C3", "30", "n/a"},
			{"C4", "40", "30%"},
			{"C5", "1000", "8%"},
		})
}

func TestProfileColumn(t *testing.T) {
	p, ok := ProfileColumn(budgetTable(), "Daily Budget")
	require.True(t, ok)

	assert.Equal(t, 5, p.Count)
	assert.Equal(t, 0, p.Missing)
	assert.InDelta(t, 220.0, p.Mean, 1e-9)
	assert.Equal(t, 10.0, p.Min)
	assert.Equal(t, 1000.0, p.Max)
	assert.Equal(t, 30.0, p.Median)
	assert.Equal(t, 20.0, p.Q25)
	assert.Equal(t, 40.0, p.Q75)
	assert.Equal(t, 1, p.Outliers)
	assert.Greater(t, p.Skewness, 0.0)
}

func TestProfileColumnCountsMissing(t *testing.T) {
	p, ok := ProfileColumn(budgetTable(), "ACOS")
	require.True(t, ok)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, 2, p.Missing)
	assert.Equal(t, 8.0, p.Min)
}

func TestProfileColumnWithoutNumbers(t *testing.T) {
	_, ok := ProfileColumn(budgetTable(), "Campaign ID")
	assert.False(t, ok)
}

func TestProfileWorkbookSkipsAbsentColumns(t *testing.T) {
	wb := workbook.New(budgetTable())
	profiles := ProfileWorkbook(wb, Targets{
		"Sponsored Products Campaigns": {"Daily Budget", "Units"},
		"Portfolios":                   {"Budget Amount"},
	})
	require.Len(t, profiles, 1)
	assert.Equal(t, "Daily Budget", profiles[0].Column)
}
