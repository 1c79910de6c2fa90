package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsopt/domain/workbook"
)

func TestDefaultLayoutParses(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	assert.Contains(t, s.Sheets, "Portfolios")
	assert.Equal(t, "Sponsored Products Campaigns", s.SheetOrder[0])
}

func TestOrderPortfolios(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	in := []string{"Portfolio ID", "Portfolio Name", "Budget Amount", "Old Portfolio Name", "Camp Count", "Operation"}
	got := s.Order("Portfolios", in)
	assert.Equal(t, []string{"Portfolio ID", "Portfolio Name", "Old Portfolio Name", "Budget Amount", "Operation", "Camp Count"}, got)
}

func TestOrderMissingAnchorGoesToEnd(t *testing.T) {
	s, err := Parse([]byte(`
sheets:
  S:
    placements:
      - column: X
        after: Missing
      - column: Y
        at: start
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Y", "A", "X"}, s.Order("S", []string{"X", "A", "Y"}))
	assert.Equal(t, []string{"A"}, s.Order("S", []string{"A"}))
	assert.Equal(t, []string{"B", "A"}, s.Order("Other", []string{"B", "A"}))
}

func TestParseRejectsBadPlacements(t *testing.T) {
	_, err := Parse([]byte("sheets:\n  S:\n    placements:\n      - after: A\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("sheets:\n  S:\n    placements:\n      - column: A\n        at: middle\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("sheets: [unbalanced"))
	assert.Error(t, err)
}

func TestApplyAndSortSheets(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	tbl := workbook.FromRecords("Top Campaigns",
		[]string{"Ad Count", "Campaign ID", "ASIN (Informational only)", "Top ASIN", "Units"}, nil)
	out := s.Apply(tbl)
	assert.Equal(t, []string{"Campaign ID", "ASIN (Informational only)", "Top ASIN", "Units", "Ad Count"}, out.Columns())

	assert.Equal(t,
		[]string{"Sponsored Products Campaigns", "Portfolios", "Top Campaigns", "Notes"},
		s.SortSheets([]string{"Notes", "Top Campaigns", "Portfolios", "Sponsored Products Campaigns"}))
}
