package optimization

import (
	"time"

	"adsopt/domain/core"
	"adsopt/domain/workbook"
)

// Conflict is a row edited differently by more than one strategy.
// The last strategy in Strategies wins.
type Conflict struct {
	Ref        workbook.RowRef
	Strategies []string
	Columns    []string
}

// StrategySummary is the per-strategy part of a RunReport
type StrategySummary struct {
	Name        string
	RowsUpdated int
	Found       int
	Details     map[string]float64
	CleanErrors []string
	Warnings    []string
	Duration    time.Duration
}

// RunReport summarizes one orchestration
type RunReport struct {
	RunID                core.RunID
	InputHash            core.Hash
	Selected             []string
	SuccessfulStrategies int
	TotalRowsUpdated     int
	Conflicts            []Conflict
	Updated              workbook.RowSet
	Strategies           []StrategySummary
	Profiles             []ColumnProfile
	StartedAt            time.Time
	Duration             time.Duration
}

// ConflictCount is the number of conflicting rows
func (r *RunReport) ConflictCount() int { return len(r.Conflicts) }

// ColumnProfile summarizes the numeric values of one output column
type ColumnProfile struct {
	Sheet    string
	Column   string
	Count    int
	Missing  int
	Mean     float64
	StdDev   float64
	Min      float64
	Median   float64
	Max      float64
	Q25      float64
	Q75      float64
	Skewness float64
	Outliers int
}
