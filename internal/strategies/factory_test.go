package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsopt/domain/core"
	"adsopt/domain/optimization"
)

func TestGetStrategy(t *testing.T) {
	tests := []struct {
		name         string
		strategyName string
		expectError  bool
		expectedName string
	}{
		{"empty portfolios", "empty_portfolios", false, NameEmptyPortfolios},
		{"alias with spaces", "  Rename_Empty_Portfolios ", false, NameEmptyPortfolios},
		{"campaign portfolio", "campaigns_without_portfolio", false, NameCampaignsWithoutPortfolio},
		{"top campaigns", "organize_top_campaigns", false, NameTopCampaigns},
		{"unknown", "delete_everything", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := GetStrategy(tt.strategyName, Options{})
			if tt.expectError {
				assert.True(t, core.IsConfigurationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, s.Name())
		})
	}
}

func TestGetStrategyReturnsFreshInstances(t *testing.T) {
	a, _ := GetStrategy(NameTopCampaigns, Options{})
	b, _ := GetStrategy(NameTopCampaigns, Options{})
	assert.NotSame(t, a, b)
}

func TestGetStrategyAppliesOptions(t *testing.T) {
	s, err := GetStrategy(NameCampaignsWithoutPortfolio, Options{TargetPortfolioID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "42", s.(*CampaignPortfolioStrategy).TargetPortfolioID)

	top, err := GetStrategy(NameTopCampaigns, Options{TopPortfolioID: "7"})
	require.NoError(t, err)
	assert.Equal(t, "7", top.(*TopCampaignStrategy).TopPortfolioID)
}

func TestResolveFailsBeforeBuildingAnything(t *testing.T) {
	_, err := Resolve([]string{NameEmptyPortfolios, "bogus"}, Options{})
	assert.True(t, core.IsConfigurationError(err))

	_, err = Resolve(nil, Options{})
	assert.Error(t, err)

	got, err := Resolve([]string{NameEmptyPortfolios, NameTopCampaigns}, Options{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAvailable(t *testing.T) {
	infos := Available(Options{})
	require.Len(t, infos, 3)

	byName := make(map[string]StrategyInfo)
	for _, info := range infos {
		byName[info.Name] = info
		assert.NotEmpty(t, info.Description)
	}
	assert.True(t, byName[NameTopCampaigns].RequiresTemplate)
	assert.False(t, byName[NameEmptyPortfolios].RequiresTemplate)
	for _, info := range infos {
		s, err := GetStrategy(info.Name, Options{})
		require.NoError(t, err)
		assert.Equal(t, optimization.NeedsTemplate(s), info.RequiresTemplate, info.Name)
	}
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseNames(" a, ,b,"))
	assert.Nil(t, ParseNames(""))
}
