package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
)

func topCampaignWorkbook() *workbook.Workbook {
	return buildWorkbook([][]string{
		campaignRow(EntityCampaign, "C1", "10", "Growth", ""),          // 0: 1 ad, target asin -> moved
		campaignRow(EntityProductAd, "C1", "10", "Growth", "A1"),       // 1
		campaignRow(EntityCampaign, "C2", "10", "Growth", ""),          // 2: 2 ads -> excluded
		campaignRow(EntityProductAd, "C2", "10", "Growth", "A1"),       // 3
		campaignRow(EntityProductAd, "C2", "10", "Growth", "A2"),       // 4
		campaignRow(EntityCampaign, "C3", "11", "Top Terminal", ""),    // 5: ignored, kept
		campaignRow(EntityProductAd, "C3", "11", "Top Terminal", "A1"), // 6
		campaignRow(EntityProductAd, "C3", "11", "Top Terminal", "A2"), // 7
		campaignRow(EntityCampaign, "C4", "12", "Brand DEFENSE", ""),   // 8: deletion marker -> excluded
		campaignRow(EntityCampaign, "C5", "13", "Growth", "A9"),        // 9: own asin, not target -> kept
		campaignRow(EntityCampaign, "C6", "13", "Growth", "A2"),        // 10: own asin, target -> moved
	}, nil)
}

func TestTopCampaignReorganization(t *testing.T) {
	s := NewTopCampaignStrategy("").WithTemplate(optimization.Template{ASINs: []string{"A1", " A2 "}})

	tables, updated, stats := runStages(t, s, topCampaignWorkbook())
	top := tableByName(t, tables, TopCampaignsSheet)
	review := tableByName(t, tables, CampaignReviewSheet)

	require.Equal(t, 2, top.Len())
	assert.Equal(t, "C1", top.Row(0).Get(ColCampaignID).String())
	assert.Equal(t, "A1", top.Row(0).Get(ColTopASIN).String())
	assert.Equal(t, DefaultTopPortfolioID, top.Row(0).Get(ColPortfolioID).String())
	assert.Equal(t, OperationUpdate, top.Row(0).Get(ColOperation).String())
	assert.Equal(t, "1", top.Row(0).Get(ColAdCount).String())
	assert.Equal(t, "C6", top.Row(1).Get(ColCampaignID).String())
	assert.Equal(t, "A2", top.Row(1).Get(ColTopASIN).String())

	require.Equal(t, 2, review.Len())
	assert.Equal(t, "C3", review.Row(0).Get(ColCampaignID).String())
	assert.Equal(t, "2", review.Row(0).Get(ColAdCount).String(), "ignored rows keep despite two ads")
	assert.True(t, review.Row(0).Get(ColTopASIN).IsEmpty())
	assert.Equal(t, "C5", review.Row(1).Get(ColCampaignID).String())
	assert.Equal(t, "13", review.Row(1).Get(ColPortfolioID).String())

	assert.Equal(t, []int{0, 10}, updated.Positions(CampaignSheet))
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, 6, stats.Found)
	assert.Equal(t, float64(1), stats.Details["ignored"])
	assert.Equal(t, float64(1), stats.Details["excluded_ad_count"])
	assert.Equal(t, float64(1), stats.Details["excluded_portfolio_name"])
	assert.Equal(t, float64(6), stats.Details["moved_units_total"])
	assert.InDelta(t, 0.25, stats.Details["moved_acos_mean"], 1e-9)
}

func TestTopCampaignPatchesCampaignSheet(t *testing.T) {
	s := NewTopCampaignStrategy("").WithTemplate(optimization.Template{ASINs: []string{"A1", "A2"}})

	tables, updated, _ := runStages(t, s, topCampaignWorkbook())
	sheet := tableByName(t, tables, CampaignSheet)
	require.Equal(t, 11, sheet.Len())

	for _, pos := range updated.Positions(CampaignSheet) {
		row, ok := sheet.RowByRef(workbook.RowRef{Sheet: CampaignSheet, Pos: pos})
		require.True(t, ok)
		assert.Equal(t, DefaultTopPortfolioID, row.Get(ColPortfolioID).String())
		assert.Equal(t, OperationUpdate, row.Get(ColOperation).String())
	}

	kept, ok := sheet.RowByRef(workbook.RowRef{Sheet: CampaignSheet, Pos: 9})
	require.True(t, ok)
	assert.Equal(t, "13", kept.Get(ColPortfolioID).String())
	assert.True(t, kept.Get(ColOperation).IsEmpty())
	assert.False(t, sheet.HasColumn(ColTopASIN), "campaign sheet keeps its own layout")
}

func TestTopCampaignRequiresTemplate(t *testing.T) {
	s := NewTopCampaignStrategy("")

	res := s.Validate(topCampaignWorkbook())
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "target ASIN template is missing or empty")

	var consumer optimization.TemplateConsumer = s
	bound := consumer.WithTemplate(optimization.Template{ASINs: []string{"A1"}})
	assert.True(t, bound.Validate(topCampaignWorkbook()).IsValid)
	assert.False(t, s.Validate(topCampaignWorkbook()).IsValid, "binding returns a copy")
}

func TestTopCampaignCleanCoercesNumbers(t *testing.T) {
	wb := buildWorkbook([][]string{
		{EntityCampaign, "", "C1", "", "1", "n", "Growth", "lots", "0.3", "A1"},
	}, nil)
	s := NewTopCampaignStrategy("").WithTemplate(optimization.Template{ASINs: []string{"A1"}})

	cleaned, stats, err := s.Clean(wb)
	require.NoError(t, err)
	require.Len(t, stats.DataErrors, 1)
	assert.Contains(t, stats.DataErrors[0], ColUnits)

	slice, ok := cleaned.Sheet(campaignSlice)
	require.True(t, ok)
	assert.True(t, slice.Row(0).Get(ColUnits).IsEmpty())

	src, _ := wb.Sheet(CampaignSheet)
	assert.Equal(t, "lots", src.Row(0).Get(ColUnits).String())
}
