package strategies

// constants.go
//
// Sheet names, bulk-sheet headers and the fixed business rules shared by the
// optimization strategies.

// ============================================================================
// Sheets
// ============================================================================

const (
	CampaignSheet       = "Sponsored Products Campaigns"
	PortfolioSheet      = "Portfolios"
	TopCampaignsSheet   = "Top Campaigns"
	CampaignReviewSheet = "Campaign Review"

	// working slices produced by Clean; never written out
	campaignSlice  = "campaign slice"
	productAdSlice = "product ad slice"
)

// ============================================================================
// Columns
// ============================================================================

const (
	ColEntity            = "Entity"
	ColOperation         = "Operation"
	ColCampaignID        = "Campaign ID"
	ColAdGroupID         = "Ad Group ID"
	ColPortfolioID       = "Portfolio ID"
	ColCampaignName      = "Campaign Name"
	ColPortfolioNameInfo = "Portfolio Name (Informational only)"
	ColState             = "State"
	ColCampaignState     = "Campaign State (Informational only)"
	ColAdGroupState      = "Ad Group State (Informational only)"
	ColDailyBudget       = "Daily Budget"
	ColUnits             = "Units"
	ColACOS              = "ACOS"
	ColASIN              = "ASIN (Informational only)"

	ColPortfolioName   = "Portfolio Name"
	ColBudgetAmount    = "Budget Amount"
	ColBudgetPolicy    = "Budget Policy"
	ColBudgetStartDate = "Budget Start Date"
	ColBudgetEndDate   = "Budget End Date"

	// derived
	ColOldPortfolioName = "Old Portfolio Name"
	ColCampCount        = "Camp Count"
	ColAdCount          = "Ad Count"
	ColTopASIN          = "Top ASIN"
)

// ============================================================================
// Entities and flags
// ============================================================================

const (
	EntityCampaign  = "Campaign"
	EntityProductAd = "Product Ad"
	EntityPortfolio = "Portfolio"

	OperationUpdate = "update"
	BudgetNoCap     = "No Cap"
)

// ============================================================================
// Targets
// ============================================================================

const (
	// DefaultTargetPortfolioID receives campaigns that have no portfolio
	DefaultTargetPortfolioID = "84453417629173"

	// DefaultTopPortfolioID receives campaigns advertising a target ASIN
	DefaultTopPortfolioID = "33243147498224"
)

// ============================================================================
// Business rule lists
// ============================================================================

// portfolioRenameExclusions are portfolio names that are never renamed (exact match)
var portfolioRenameExclusions = []string{"Paused", "Terminal", "Top Terminal"}

// topCampaignIgnored are portfolio names whose campaigns always stay in the main output
var topCampaignIgnored = []string{"Pause", "Terminal", "Top Terminal"}

// topCampaignDeleteMarkers exclude a campaign when its portfolio name contains one (case-insensitive)
var topCampaignDeleteMarkers = []string{"Flat", "Same", "Defense", "Offense"}

// maxAdsPerTopCampaign is the largest ad count a campaign may have to stay in output
const maxAdsPerTopCampaign = 1

// ============================================================================
// Run report
// ============================================================================

// ProfileTargets are the numeric columns summarized in the run report
func ProfileTargets() map[string][]string {
	return map[string][]string{
		CampaignSheet:     {ColDailyBudget, ColUnits, ColACOS},
		PortfolioSheet:    {ColBudgetAmount},
		TopCampaignsSheet: {ColUnits, ColACOS},
	}
}
