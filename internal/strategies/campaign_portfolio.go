package strategies

import (
	"fmt"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
)

// CampaignPortfolioStrategy moves campaigns without a portfolio into a fixed
// target portfolio.
type CampaignPortfolioStrategy struct {
	TargetPortfolioID string
}

// NewCampaignPortfolioStrategy creates the strategy; an empty target falls
// back to DefaultTargetPortfolioID.
func NewCampaignPortfolioStrategy(targetPortfolioID string) *CampaignPortfolioStrategy {
	if targetPortfolioID == "" {
		targetPortfolioID = DefaultTargetPortfolioID
	}
	return &CampaignPortfolioStrategy{TargetPortfolioID: targetPortfolioID}
}

func (s *CampaignPortfolioStrategy) Name() string { return NameCampaignsWithoutPortfolio }

func (s *CampaignPortfolioStrategy) Description() string {
	return fmt.Sprintf("Assign campaigns without a portfolio to portfolio %s", s.TargetPortfolioID)
}

// Validate requires the campaign sheet and warns about duplicated campaign ids.
func (s *CampaignPortfolioStrategy) Validate(wb *workbook.Workbook) optimization.ValidationResult {
	errs := requireColumns(wb, CampaignSheet, ColEntity, ColCampaignID, ColPortfolioID)
	if len(errs) > 0 {
		return optimization.NewValidationResult(errs, nil)
	}

	var warnings []string
	sheet, _ := wb.Sheet(CampaignSheet)
	seen := make(map[string]bool)
	for _, r := range sheet.Filter(entityIs(EntityCampaign)).Rows() {
		id := normalizeID(r.Get(ColCampaignID))
		if id == "" {
			continue
		}
		if seen[id] {
			warnings = append(warnings, fmt.Sprintf("campaign id %s appears more than once, each of its rows is reassigned on its own", id))
		}
		seen[id] = true
	}
	return optimization.NewValidationResult(nil, warnings)
}

// Clean returns the full campaign sheet together with its campaign-only slice
func (s *CampaignPortfolioStrategy) Clean(wb *workbook.Workbook) (*workbook.Workbook, optimization.CleanStats, error) {
	sheet, ok := wb.Sheet(CampaignSheet)
	if !ok {
		return nil, optimization.CleanStats{}, fmt.Errorf("sheet %q not found", CampaignSheet)
	}
	slice := sheet.Filter(entityIs(EntityCampaign)).Renamed(campaignSlice)

	stats := optimization.CleanStats{RowsIn: sheet.Len(), RowsKept: slice.Len()}
	for _, r := range slice.Rows() {
		if normalizeID(r.Get(ColCampaignID)) == "" {
			stats.DataErrors = append(stats.DataErrors,
				fmt.Sprintf("%s row %d: campaign without id", r.Ref.Sheet, r.Ref.Pos))
		}
	}
	return workbook.New(sheet, slice), stats, nil
}

// Process reassigns every campaign whose portfolio reference is missing and
// patches the edited slice rows back into the full sheet by ref.
func (s *CampaignPortfolioStrategy) Process(cleaned *workbook.Workbook) (*workbook.Workbook, workbook.RowSet, optimization.ProcessStats, error) {
	sheet, ok := cleaned.Sheet(CampaignSheet)
	if !ok {
		return nil, workbook.RowSet{}, optimization.ProcessStats{}, fmt.Errorf("sheet %q not found", CampaignSheet)
	}
	slice, ok := cleaned.Sheet(campaignSlice)
	if !ok {
		return nil, workbook.RowSet{}, optimization.ProcessStats{}, fmt.Errorf("campaign slice missing from cleaned workbook")
	}

	edits := make(map[workbook.RowRef]workbook.Row)
	updated := workbook.NewRowSet()
	for _, r := range slice.Rows() {
		if normalizeID(r.Get(ColPortfolioID)) != "" {
			continue
		}
		// slice rows keep their full-sheet ref, so duplicated ids stay apart
		edits[r.Ref] = r.WithAll(map[string]workbook.Value{
			ColPortfolioID: workbook.Text(s.TargetPortfolioID),
			ColOperation:   workbook.Text(OperationUpdate),
		})
		updated.Add(r.Ref)
	}

	full := sheet.WithColumns(ColOperation).Map(func(r workbook.Row) workbook.Row {
		if e, ok := edits[r.Ref]; ok {
			return e
		}
		return r
	})

	stats := optimization.ProcessStats{
		Found:   slice.Len(),
		Updated: updated.Len(),
		Details: map[string]float64{
			"campaigns_without_portfolio": float64(updated.Len()),
		},
	}
	return workbook.New(full), updated, stats, nil
}

// Format emits the full campaign sheet
func (s *CampaignPortfolioStrategy) Format(edited *workbook.Workbook) ([]*workbook.Table, error) {
	sheet, ok := edited.Sheet(CampaignSheet)
	if !ok {
		return nil, fmt.Errorf("edited workbook has no %q sheet", CampaignSheet)
	}
	return []*workbook.Table{sheet}, nil
}
