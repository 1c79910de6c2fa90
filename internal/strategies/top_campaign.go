package strategies

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
)

// TopCampaignStrategy splits single-ad campaigns: those advertising a target
// ASIN move to the Top Campaigns sheet under the top portfolio, the rest stay
// in the review sheet.
type TopCampaignStrategy struct {
	TopPortfolioID string
	Ignored        []string
	DeleteMarkers  []string
	MaxAds         int

	template optimization.Template
}

// NewTopCampaignStrategy creates the strategy; an empty portfolio id falls
// back to DefaultTopPortfolioID.
func NewTopCampaignStrategy(topPortfolioID string) *TopCampaignStrategy {
	if topPortfolioID == "" {
		topPortfolioID = DefaultTopPortfolioID
	}
	return &TopCampaignStrategy{
		TopPortfolioID: topPortfolioID,
		Ignored:        append([]string(nil), topCampaignIgnored...),
		DeleteMarkers:  append([]string(nil), topCampaignDeleteMarkers...),
		MaxAds:         maxAdsPerTopCampaign,
	}
}

func (s *TopCampaignStrategy) Name() string { return NameTopCampaigns }

func (s *TopCampaignStrategy) Description() string {
	return "Move single-ad campaigns that advertise a target ASIN into the top portfolio"
}

func (s *TopCampaignStrategy) RequiresTemplate() bool { return true }

// WithTemplate returns a copy of the strategy bound to t
func (s *TopCampaignStrategy) WithTemplate(t optimization.Template) optimization.Strategy {
	cp := *s
	cp.Ignored = append([]string(nil), s.Ignored...)
	cp.DeleteMarkers = append([]string(nil), s.DeleteMarkers...)
	cp.template = optimization.Template{ASINs: append([]string(nil), t.ASINs...)}
	return &cp
}

func (s *TopCampaignStrategy) Validate(wb *workbook.Workbook) optimization.ValidationResult {
	errs := requireColumns(wb, CampaignSheet, ColEntity, ColCampaignID, ColPortfolioID, ColPortfolioNameInfo, ColASIN)
	if s.template.IsEmpty() {
		errs = append(errs, "target ASIN template is missing or empty")
	}

	var warnings []string
	if sheet, ok := wb.Sheet(CampaignSheet); ok && sheet.HasColumn(ColEntity) {
		if sheet.Filter(entityIs(EntityProductAd)).Len() == 0 {
			warnings = append(warnings, "no Product Ad rows found, every campaign has an ad count of 0")
		}
	}
	return optimization.NewValidationResult(errs, warnings)
}

// Clean splits the campaign sheet into campaign and product ad slices and
// blanks performance cells that are not numeric. The raw sheet rides along
// so Process can patch the moved rows in place.
func (s *TopCampaignStrategy) Clean(wb *workbook.Workbook) (*workbook.Workbook, optimization.CleanStats, error) {
	sheet, ok := wb.Sheet(CampaignSheet)
	if !ok {
		return nil, optimization.CleanStats{}, fmt.Errorf("sheet %q not found", CampaignSheet)
	}

	campaigns := sheet.Filter(entityIs(EntityCampaign)).Renamed(campaignSlice)
	ads := sheet.Filter(entityIs(EntityProductAd)).Renamed(productAdSlice)

	campaigns, problems := coerceNumeric(campaigns, ColUnits, ColACOS, ColDailyBudget)

	stats := optimization.CleanStats{
		RowsIn:     sheet.Len(),
		RowsKept:   campaigns.Len() + ads.Len(),
		DataErrors: problems,
	}
	return workbook.New(campaigns, ads, sheet), stats, nil
}

// Process applies the ignore list, the deletion rule and the ASIN match
func (s *TopCampaignStrategy) Process(cleaned *workbook.Workbook) (*workbook.Workbook, workbook.RowSet, optimization.ProcessStats, error) {
	campaigns, ok := cleaned.Sheet(campaignSlice)
	if !ok {
		return nil, workbook.RowSet{}, optimization.ProcessStats{}, fmt.Errorf("campaign slice missing from cleaned workbook")
	}
	ads, ok := cleaned.Sheet(productAdSlice)
	if !ok {
		return nil, workbook.RowSet{}, optimization.ProcessStats{}, fmt.Errorf("product ad slice missing from cleaned workbook")
	}
	sheet, ok := cleaned.Sheet(CampaignSheet)
	if !ok {
		return nil, workbook.RowSet{}, optimization.ProcessStats{}, fmt.Errorf("sheet %q not found", CampaignSheet)
	}

	campaignKey := func(r workbook.Row) string { return normalizeID(r.Get(ColCampaignID)) }
	adCounts := campaigns.CountMatching(ads, campaignKey, campaignKey)

	firstASIN := make(map[string]string)
	for _, ad := range ads.Rows() {
		id := campaignKey(ad)
		asin := strings.TrimSpace(ad.Get(ColASIN).String())
		if _, seen := firstASIN[id]; id != "" && asin != "" && !seen {
			firstASIN[id] = asin
		}
	}

	var review, top []workbook.Row
	var ignored, excludedAds, excludedName int
	var movedUnits, movedACOS []float64
	updated := workbook.NewRowSet()

	for i, r := range campaigns.Rows() {
		portfolioName := strings.TrimSpace(r.Get(ColPortfolioNameInfo).String())
		r = r.WithAll(map[string]workbook.Value{
			ColAdCount: workbook.Int(adCounts[i]),
			ColTopASIN: workbook.Empty(),
		})

		if containsExact(s.Ignored, portfolioName) {
			ignored++
			review = append(review, r)
			continue
		}
		if adCounts[i] > s.MaxAds {
			excludedAds++
			continue
		}
		if containsFold(s.DeleteMarkers, portfolioName) {
			excludedName++
			continue
		}

		asin := strings.TrimSpace(r.Get(ColASIN).String())
		if asin == "" {
			asin = firstASIN[campaignKey(r)]
		}
		if !s.template.Contains(asin) {
			review = append(review, r)
			continue
		}

		r = r.WithAll(map[string]workbook.Value{
			ColTopASIN:     workbook.Text(asin),
			ColPortfolioID: workbook.Text(s.TopPortfolioID),
			ColOperation:   workbook.Text(OperationUpdate),
		})
		top = append(top, r)
		updated.Add(r.Ref)

		if v, ok := r.Get(ColUnits).Float(); ok {
			movedUnits = append(movedUnits, v)
		}
		if v, ok := r.Get(ColACOS).Float(); ok {
			movedACOS = append(movedACOS, v)
		}
	}

	// moved rows are highlighted in the campaign sheet, so it has to carry
	// the new portfolio as well
	moved := map[string]workbook.Value{
		ColPortfolioID: workbook.Text(s.TopPortfolioID),
		ColOperation:   workbook.Text(OperationUpdate),
	}
	full := sheet.WithColumns(ColOperation).Map(func(r workbook.Row) workbook.Row {
		if updated.Has(r.Ref) {
			return r.WithAll(moved)
		}
		return r
	})

	columns := campaigns.WithColumns(ColOperation, ColAdCount, ColTopASIN).Columns()
	edited := workbook.New(
		workbook.NewTable(CampaignReviewSheet, columns, review),
		workbook.NewTable(TopCampaignsSheet, columns, top),
		full,
	)

	details := map[string]float64{
		"ignored":                 float64(ignored),
		"excluded_ad_count":       float64(excludedAds),
		"excluded_portfolio_name": float64(excludedName),
		"kept":                    float64(len(review)),
		"moved":                   float64(len(top)),
	}
	if total, err := stats.Sum(stats.Float64Data(movedUnits)); err == nil {
		details["moved_units_total"] = total
	}
	if mean, err := stats.Mean(stats.Float64Data(movedACOS)); err == nil {
		details["moved_acos_mean"] = mean
	}

	ps := optimization.ProcessStats{
		Found:   campaigns.Len(),
		Updated: updated.Len(),
		Details: details,
	}
	return edited, updated, ps, nil
}

// Format emits the review and top campaign sheets followed by the patched
// campaign sheet.
func (s *TopCampaignStrategy) Format(edited *workbook.Workbook) ([]*workbook.Table, error) {
	var out []*workbook.Table
	for _, name := range []string{CampaignReviewSheet, TopCampaignsSheet, CampaignSheet} {
		t, ok := edited.Sheet(name)
		if !ok {
			return nil, fmt.Errorf("edited workbook has no %q sheet", name)
		}
		out = append(out, t)
	}
	return out, nil
}
