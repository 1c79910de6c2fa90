package strategies

import (
	"testing"

	"github.com/stretchr/testify/require"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
)

var campaignHeader = []string{
	ColEntity, ColOperation, ColCampaignID, ColAdGroupID, ColPortfolioID,
	ColCampaignName, ColPortfolioNameInfo, ColUnits, ColACOS, ColASIN,
}

var portfolioHeader = []string{
	ColEntity, ColOperation, ColPortfolioID, ColPortfolioName,
	ColBudgetAmount, ColBudgetPolicy, ColBudgetStartDate,
}

func campaignRow(entity, campaignID, portfolioID, portfolioName, asin string) []string {
	return []string{entity, "", campaignID, "", portfolioID, "name-" + campaignID, portfolioName, "3", "0.25", asin}
}

func portfolioRow(id, name string) []string {
	return []string{EntityPortfolio, "", id, name, "100", "dateRange", "20240101"}
}

func buildWorkbook(campaigns, portfolios [][]string) *workbook.Workbook {
	var tables []*workbook.Table
	if campaigns != nil {
		tables = append(tables, workbook.FromRecords(CampaignSheet, campaignHeader, campaigns))
	}
	if portfolios != nil {
		tables = append(tables, workbook.FromRecords(PortfolioSheet, portfolioHeader, portfolios))
	}
	return workbook.New(tables...)
}

// runStages drives a strategy through all four stages
func runStages(t *testing.T, s optimization.Strategy, wb *workbook.Workbook) ([]*workbook.Table, workbook.RowSet, optimization.ProcessStats) {
	t.Helper()

	v := s.Validate(wb)
	require.True(t, v.IsValid, "validation errors: %v", v.Errors)

	cleaned, _, err := s.Clean(wb)
	require.NoError(t, err)

	edited, updated, stats, err := s.Process(cleaned)
	require.NoError(t, err)

	tables, err := s.Format(edited)
	require.NoError(t, err)
	return tables, updated, stats
}

func tableByName(t *testing.T, tables []*workbook.Table, name string) *workbook.Table {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Name() == name {
			return tbl
		}
	}
	t.Fatalf("table %q not in output", name)
	return nil
}
