package strategies

import (
	"fmt"
	"strconv"
	"strings"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
)

// EmptyPortfolioStrategy renames portfolios that no campaign references to the
// smallest free positive integer and lifts their budget cap.
type EmptyPortfolioStrategy struct {
	Exclusions []string
}

// NewEmptyPortfolioStrategy creates the strategy with the standard exclusion list
func NewEmptyPortfolioStrategy() *EmptyPortfolioStrategy {
	return &EmptyPortfolioStrategy{Exclusions: append([]string(nil), portfolioRenameExclusions...)}
}

func (s *EmptyPortfolioStrategy) Name() string { return NameEmptyPortfolios }

func (s *EmptyPortfolioStrategy) Description() string {
	return "Rename portfolios without campaigns to the next free number and remove their budget cap"
}

// Validate requires the portfolio sheet; the campaign sheet is optional and
// only produces a warning when absent.
func (s *EmptyPortfolioStrategy) Validate(wb *workbook.Workbook) optimization.ValidationResult {
	errs := requireColumns(wb, PortfolioSheet, ColPortfolioID, ColPortfolioName)

	var warnings []string
	if _, ok := wb.Sheet(CampaignSheet); !ok {
		warnings = append(warnings, fmt.Sprintf("sheet %q not found, every portfolio counts as empty", CampaignSheet))
	} else {
		errs = append(errs, requireColumns(wb, CampaignSheet, ColEntity, ColPortfolioID)...)
	}
	return optimization.NewValidationResult(errs, warnings)
}

// Clean keeps the portfolio rows and the campaign rows of the campaign sheet
func (s *EmptyPortfolioStrategy) Clean(wb *workbook.Workbook) (*workbook.Workbook, optimization.CleanStats, error) {
	portfolios, ok := wb.Sheet(PortfolioSheet)
	if !ok {
		return nil, optimization.CleanStats{}, fmt.Errorf("sheet %q not found", PortfolioSheet)
	}
	stats := optimization.CleanStats{RowsIn: portfolios.Len()}

	if portfolios.HasColumn(ColEntity) {
		portfolios = portfolios.Filter(func(r workbook.Row) bool {
			e := strings.TrimSpace(r.Get(ColEntity).String())
			return e == "" || strings.EqualFold(e, EntityPortfolio)
		})
	}
	for _, r := range portfolios.Rows() {
		if normalizeID(r.Get(ColPortfolioID)) == "" {
			stats.DataErrors = append(stats.DataErrors,
				fmt.Sprintf("%s row %d: portfolio without id", r.Ref.Sheet, r.Ref.Pos))
		}
	}
	stats.RowsKept = portfolios.Len()

	cleaned := workbook.New(portfolios)
	if campaigns, ok := wb.Sheet(CampaignSheet); ok {
		campaigns = campaigns.Filter(entityIs(EntityCampaign))
		cleaned = cleaned.WithSheet(campaigns)
	}
	return cleaned, stats, nil
}

// Process counts the campaigns of every portfolio, backs up names and renames
// the eligible portfolios in sheet order.
func (s *EmptyPortfolioStrategy) Process(cleaned *workbook.Workbook) (*workbook.Workbook, workbook.RowSet, optimization.ProcessStats, error) {
	portfolios, ok := cleaned.Sheet(PortfolioSheet)
	if !ok {
		return nil, workbook.RowSet{}, optimization.ProcessStats{}, fmt.Errorf("sheet %q not found", PortfolioSheet)
	}
	campaigns, _ := cleaned.Sheet(CampaignSheet)

	portfolioKey := func(r workbook.Row) string { return normalizeID(r.Get(ColPortfolioID)) }
	counts := portfolios.CountMatching(campaigns, portfolioKey, portfolioKey)

	used := make(map[int]bool)
	for _, r := range portfolios.Rows() {
		name := strings.TrimSpace(r.Get(ColPortfolioName).String())
		if isPureInteger(name) {
			if n, err := strconv.Atoi(name); err == nil {
				used[n] = true
			}
		}
	}

	updated := workbook.NewRowSet()
	empty, next := 0, 1
	rows := portfolios.WithColumns(ColOldPortfolioName, ColCampCount).Rows()
	for i, r := range rows {
		r = r.WithAll(map[string]workbook.Value{
			ColOldPortfolioName: r.Get(ColPortfolioName),
			ColCampCount:        workbook.Int(counts[i]),
		})
		if counts[i] == 0 {
			empty++
		}

		if s.eligible(r, counts[i]) {
			for used[next] {
				next++
			}
			used[next] = true
			r = r.WithAll(map[string]workbook.Value{
				ColPortfolioName:   intText(next),
				ColOperation:       workbook.Text(OperationUpdate),
				ColBudgetPolicy:    workbook.Text(BudgetNoCap),
				ColBudgetAmount:    workbook.Empty(),
				ColBudgetStartDate: workbook.Empty(),
			})
			updated.Add(r.Ref)
		}
		rows[i] = r
	}

	columns := portfolios.WithColumns(ColOldPortfolioName, ColCampCount,
		ColOperation, ColBudgetPolicy, ColBudgetAmount, ColBudgetStartDate).Columns()
	edited := workbook.NewTable(PortfolioSheet, columns, rows)

	stats := optimization.ProcessStats{
		Found:   portfolios.Len(),
		Updated: updated.Len(),
		Details: map[string]float64{
			"empty_portfolios": float64(empty),
			"renamed":          float64(updated.Len()),
		},
	}
	return workbook.New(edited), updated, stats, nil
}

// eligible: no campaigns, not an excluded name, not already a number
func (s *EmptyPortfolioStrategy) eligible(r workbook.Row, related int) bool {
	if related != 0 {
		return false
	}
	name := strings.TrimSpace(r.Get(ColPortfolioName).String())
	if containsExact(s.Exclusions, name) {
		return false
	}
	return !isPureInteger(name)
}

// Format emits the portfolio sheet
func (s *EmptyPortfolioStrategy) Format(edited *workbook.Workbook) ([]*workbook.Table, error) {
	portfolios, ok := edited.Sheet(PortfolioSheet)
	if !ok {
		return nil, fmt.Errorf("edited workbook has no %q sheet", PortfolioSheet)
	}
	return []*workbook.Table{portfolios}, nil
}
