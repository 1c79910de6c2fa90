package strategies

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsopt/domain/workbook"
)

func TestEmptyPortfolioScenarioA(t *testing.T) {
	wb := buildWorkbook(
		[][]string{
			campaignRow(EntityCampaign, "C1", "1", "", ""),
			campaignRow(EntityCampaign, "C2", "1.0", "", ""),
			campaignRow(EntityProductAd, "C1", "2", "", "B01"),
		},
		[][]string{
			portfolioRow("1", "5"),
			portfolioRow("2", "Promo"),
			portfolioRow("3", "Paused"),
		},
	)

	tables, updated, stats := runStages(t, NewEmptyPortfolioStrategy(), wb)
	out := tableByName(t, tables, PortfolioSheet)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, "5", out.Row(0).Get(ColPortfolioName).String(), "numeric name is kept")
	assert.Equal(t, "2", out.Row(0).Get(ColCampCount).String(), "product ad rows are not counted")

	renamed := out.Row(1)
	assert.Equal(t, "1", renamed.Get(ColPortfolioName).String())
	assert.Equal(t, "Promo", renamed.Get(ColOldPortfolioName).String())
	assert.Equal(t, OperationUpdate, renamed.Get(ColOperation).String())
	assert.Equal(t, BudgetNoCap, renamed.Get(ColBudgetPolicy).String())
	assert.True(t, renamed.Get(ColBudgetAmount).IsEmpty())
	assert.True(t, renamed.Get(ColBudgetStartDate).IsEmpty())

	paused := out.Row(2)
	assert.Equal(t, "Paused", paused.Get(ColPortfolioName).String())
	assert.Equal(t, "Paused", paused.Get(ColOldPortfolioName).String(), "name is always backed up")
	assert.True(t, paused.Get(ColOperation).IsEmpty())
	assert.Equal(t, "100", paused.Get(ColBudgetAmount).String())

	assert.Equal(t, []workbook.RowRef{{Sheet: PortfolioSheet, Pos: 1}}, updated.Refs())
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 3, stats.Found)
}

func TestEmptyPortfolioUniqueNumbers(t *testing.T) {
	wb := buildWorkbook(
		[][]string{campaignRow(EntityCampaign, "C1", "10", "", "")},
		[][]string{
			portfolioRow("10", "Brand"), // has a campaign
			portfolioRow("11", "2"),
			portfolioRow("12", "Alpha"),
			portfolioRow("13", "1"),
			portfolioRow("14", "Beta"),
			portfolioRow("15", "Gamma"),
			portfolioRow("16", "4"),
			portfolioRow("17", ""),
		},
	)

	tables, updated, _ := runStages(t, NewEmptyPortfolioStrategy(), wb)
	out := tableByName(t, tables, PortfolioSheet)

	names := out.Values(ColPortfolioName)
	assert.Equal(t, "Brand", names[0].String())
	assert.Equal(t, "3", names[2].String(), "1 and 2 already taken")
	assert.Equal(t, "5", names[4].String(), "4 already taken")
	assert.Equal(t, "6", names[5].String())
	assert.Equal(t, "7", names[7].String(), "blank names are renamed too")
	assert.Equal(t, 4, updated.Len())

	seen := make(map[int]bool)
	for _, v := range names {
		n, err := strconv.Atoi(v.String())
		if err != nil {
			continue
		}
		assert.False(t, seen[n], "duplicate numeric name %d", n)
		seen[n] = true
	}
}

func TestEmptyPortfolioEligibility(t *testing.T) {
	tests := []struct {
		name    string
		related int
		want    bool
	}{
		{"Promo", 0, true},
		{"Promo", 1, false},
		{"Paused", 0, false},
		{"Terminal", 0, false},
		{"Top Terminal", 0, false},
		{"paused", 0, true},
		{"42", 0, false},
		{"0", 0, false},
		{"-3", 0, true},
		{"4.5", 0, true},
	}

	s := NewEmptyPortfolioStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := workbook.NewRow(workbook.RowRef{}, map[string]workbook.Value{ColPortfolioName: workbook.Text(tt.name)})
			assert.Equal(t, tt.want, s.eligible(r, tt.related))
		})
	}
}

func TestEmptyPortfolioWithoutCampaignSheet(t *testing.T) {
	wb := buildWorkbook(nil, [][]string{portfolioRow("1", "A"), portfolioRow("2", "B")})
	s := NewEmptyPortfolioStrategy()

	v := s.Validate(wb)
	assert.True(t, v.IsValid)
	assert.Len(t, v.Warnings, 1)

	_, updated, _ := runStages(t, s, wb)
	assert.Equal(t, 2, updated.Len(), "every portfolio is a candidate")
}

func TestEmptyPortfolioValidateIsIdempotent(t *testing.T) {
	wb := buildWorkbook([][]string{campaignRow(EntityCampaign, "C1", "", "", "")}, nil)
	s := NewEmptyPortfolioStrategy()

	first := s.Validate(wb)
	second := s.Validate(wb)
	assert.False(t, first.IsValid)
	assert.Equal(t, first, second)
}

func TestEmptyPortfolioRepeatedRunsAreIndependent(t *testing.T) {
	wb := buildWorkbook(nil, [][]string{portfolioRow("1", "A")})
	s := NewEmptyPortfolioStrategy()

	_, first, _ := runStages(t, s, wb)
	_, second, _ := runStages(t, s, wb)
	assert.Equal(t, first.Refs(), second.Refs())
	assert.Equal(t, 1, second.Len())

	p, _ := wb.Sheet(PortfolioSheet)
	assert.Equal(t, "A", p.Row(0).Get(ColPortfolioName).String(), "input workbook untouched")
}
