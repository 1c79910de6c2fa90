package strategies

import (
	"fmt"
	"sort"
	"strings"

	"adsopt/domain/core"
	"adsopt/domain/optimization"
)

// factory.go
// Maps user-selected strategy names to configured strategy instances.

const (
	NameEmptyPortfolios           = "empty_portfolios"
	NameCampaignsWithoutPortfolio = "campaigns_without_portfolio"
	NameTopCampaigns              = "top_campaigns"
)

// Options carries the configurable targets of the strategies
type Options struct {
	TargetPortfolioID string
	TopPortfolioID    string
}

// StrategyInfo describes one available strategy for UI/CLI listings
type StrategyInfo struct {
	Name             string
	Description      string
	RequiresTemplate bool
}

// GetStrategy returns a fresh strategy instance for name. Every call builds a
// new instance so no state can leak between runs.
func GetStrategy(name string, opts Options) (optimization.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameEmptyPortfolios, "empty_portfolio", "rename_empty_portfolios":
		return NewEmptyPortfolioStrategy(), nil

	case NameCampaignsWithoutPortfolio, "campaign_portfolio", "assign_portfolio":
		return NewCampaignPortfolioStrategy(opts.TargetPortfolioID), nil

	case NameTopCampaigns, "top_campaign", "organize_top_campaigns":
		return NewTopCampaignStrategy(opts.TopPortfolioID), nil

	default:
		return nil, core.NewUnknownStrategyError(name)
	}
}

// Resolve maps every name to an instance, failing on the first unknown name
// before anything is built for the run.
func Resolve(names []string, opts Options) ([]optimization.Strategy, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no strategy selected", core.ErrUnknownStrategy)
	}
	out := make([]optimization.Strategy, 0, len(names))
	for _, n := range names {
		s, err := GetStrategy(n, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Available lists every strategy, sorted by name
func Available(opts Options) []StrategyInfo {
	names := []string{NameEmptyPortfolios, NameCampaignsWithoutPortfolio, NameTopCampaigns}
	sort.Strings(names)

	infos := make([]StrategyInfo, 0, len(names))
	for _, n := range names {
		s, _ := GetStrategy(n, opts)
		infos = append(infos, StrategyInfo{
			Name:             s.Name(),
			Description:      s.Description(),
			RequiresTemplate: optimization.NeedsTemplate(s),
		})
	}
	return infos
}

// ParseNames splits a comma separated selection, dropping blanks
func ParseNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
