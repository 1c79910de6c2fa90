// Package orchestrator runs selected optimization strategies over one
// workbook and merges their edits into a single output and report.
package orchestrator

import (
	"fmt"
	"time"

	"adsopt/domain/core"
	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
	"adsopt/internal/logging"
	"adsopt/internal/profiling"
	"adsopt/internal/strategies"
)

// Config bounds a run and configures the strategy targets
type Config struct {
	// MaxRows is the largest sheet accepted; 0 disables the check
	MaxRows int
	Options strategies.Options
	// Profile lists the output columns summarized in the report; nil uses
	// the bulk-sheet defaults
	Profile profiling.Targets
}

// Inputs are the auxiliary inputs of a run
type Inputs struct {
	Template  *optimization.Template
	InputHash core.Hash
}

// Orchestrator owns the lifetime of every stage result. Strategies are
// resolved fresh for each run.
type Orchestrator struct {
	config Config
	logger *logging.Logger
}

// New creates an orchestrator
func New(config Config, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if config.Profile == nil {
		config.Profile = strategies.ProfileTargets()
	}
	return &Orchestrator{config: config, logger: logger}
}

// Run resolves names and runs the strategies in the given order. Unknown
// names fail before anything runs. Either every stage of every strategy
// succeeds and a merged workbook is returned, or an error is returned and
// no output is produced.
func (o *Orchestrator) Run(wb *workbook.Workbook, names []string, inputs Inputs) (*workbook.Workbook, *optimization.RunReport, error) {
	resolved, err := strategies.Resolve(names, o.config.Options)
	if err != nil {
		o.logger.Error("[Orchestrator] strategy resolution failed: %v", err)
		return nil, nil, err
	}

	for i, s := range resolved {
		if tc, ok := s.(optimization.TemplateConsumer); ok && inputs.Template != nil {
			resolved[i] = tc.WithTemplate(*inputs.Template)
		}
	}
	return o.RunStrategies(wb, resolved, inputs)
}

// RunStrategies runs already-built strategies. See Run.
func (o *Orchestrator) RunStrategies(wb *workbook.Workbook, selected []optimization.Strategy, inputs Inputs) (*workbook.Workbook, *optimization.RunReport, error) {
	report := &optimization.RunReport{
		RunID:     core.NewRunID(),
		InputHash: inputs.InputHash,
		StartedAt: time.Now(),
	}
	for _, s := range selected {
		report.Selected = append(report.Selected, s.Name())
	}
	log := o.logger.With("run_id", report.RunID.String())
	log.Info("[Orchestrator] starting run with strategies %v", report.Selected)

	warnings, err := o.validate(wb, selected)
	if err != nil {
		log.Warn("[Orchestrator] validation failed: %v", err)
		return nil, nil, err
	}

	results := make([]optimization.StrategyResult, 0, len(selected))
	for _, s := range selected {
		start := time.Now()
		result, err := runStrategy(s, wb)
		if err != nil {
			log.Error("[Orchestrator] %v", err)
			return nil, nil, err
		}
		results = append(results, result)

		report.Strategies = append(report.Strategies, optimization.StrategySummary{
			Name:        s.Name(),
			RowsUpdated: result.Updated.Len(),
			Found:       result.Stats.Found,
			Details:     result.Stats.Details,
			CleanErrors: result.Clean.DataErrors,
			Warnings:    warnings[s.Name()],
			Duration:    time.Since(start),
		})
		log.Info("[Orchestrator] %s updated %d of %d rows (%d data errors)",
			s.Name(), result.Updated.Len(), result.Stats.Found, len(result.Clean.DataErrors))
	}

	union := workbook.NewRowSet()
	for _, r := range results {
		union = union.Union(r.Updated)
	}

	index := indexUpdatedRows(results)
	conflicts := detectConflicts(results, index)
	merged := merge(wb, results)
	merged = applyLastWrite(merged, conflicts, index, results)

	report.SuccessfulStrategies = len(results)
	report.TotalRowsUpdated = union.Len()
	report.Updated = union
	report.Conflicts = conflicts
	report.Profiles = profiling.ProfileWorkbook(merged, o.config.Profile)
	report.Duration = time.Since(report.StartedAt)

	if len(conflicts) > 0 {
		log.Warn("[Orchestrator] %d rows were edited differently by more than one strategy; later strategies won", len(conflicts))
	}
	log.Info("[Orchestrator] run finished: %d strategies, %d rows updated in %s",
		report.SuccessfulStrategies, report.TotalRowsUpdated, report.Duration)
	return merged, report, nil
}

// validate enforces the row ceiling and validates every strategy before any
// of them processes. Any failure aborts the whole run.
func (o *Orchestrator) validate(wb *workbook.Workbook, selected []optimization.Strategy) (map[string][]string, error) {
	verr := optimization.NewValidationError()

	if o.config.MaxRows > 0 {
		for _, t := range wb.Tables() {
			if t.Len() > o.config.MaxRows {
				verr.Add("workbook", []string{fmt.Sprintf("sheet %q has %d rows, limit is %d", t.Name(), t.Len(), o.config.MaxRows)})
			}
		}
	}

	warnings := make(map[string][]string)
	for _, s := range selected {
		res := s.Validate(wb)
		if len(res.Warnings) > 0 {
			warnings[s.Name()] = res.Warnings
			o.logger.Warn("[Orchestrator] %s: %v", s.Name(), res.Warnings)
		}
		if !res.IsValid {
			verr.Add(s.Name(), res.Errors)
		}
	}

	if !verr.Empty() {
		return nil, verr
	}
	return warnings, nil
}

// runStrategy drives one strategy through clean, process and format.
// Errors and panics become processing errors.
func runStrategy(s optimization.Strategy, wb *workbook.Workbook) (result optimization.StrategyResult, err error) {
	stage := "clean"
	defer func() {
		if r := recover(); r != nil {
			err = core.NewProcessingError(s.Name(), stage, fmt.Errorf("panic: %v", r))
		}
	}()

	cleaned, cleanStats, err := s.Clean(wb)
	if err != nil {
		return result, core.NewProcessingError(s.Name(), stage, err)
	}

	stage = "process"
	edited, updated, stats, err := s.Process(cleaned)
	if err != nil {
		return result, core.NewProcessingError(s.Name(), stage, err)
	}

	stage = "format"
	tables, err := s.Format(edited)
	if err != nil {
		return result, core.NewProcessingError(s.Name(), stage, err)
	}

	return optimization.StrategyResult{
		Strategy: s.Name(),
		Tables:   tables,
		Updated:  updated,
		Clean:    cleanStats,
		Stats:    stats,
	}, nil
}
