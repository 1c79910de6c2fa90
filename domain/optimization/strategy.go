// Package optimization defines the four-stage contract every optimization
// strategy implements and the values those stages return.
package optimization

import (
	"fmt"
	"strings"

	"adsopt/domain/core"
	"adsopt/domain/workbook"
)

// Strategy is the contract all optimizations must satisfy.
// Implementations hold configuration only; every call is independent.
type Strategy interface {
	Name() string
	Description() string

	// Validate inspects the raw workbook without changing it
	Validate(wb *workbook.Workbook) ValidationResult
	// Clean copies the relevant slice of the workbook and coerces its values
	Clean(wb *workbook.Workbook) (*workbook.Workbook, CleanStats, error)
	// Process edits the cleaned slice and reports which original rows changed
	Process(cleaned *workbook.Workbook) (*workbook.Workbook, workbook.RowSet, ProcessStats, error)
	// Format converts the edited slice into output sheets
	Format(edited *workbook.Workbook) ([]*workbook.Table, error)
}

// Template is the auxiliary list of target product identifiers
type Template struct {
	ASINs []string
}

// Contains reports whether asin is on the list (exact match after trimming)
func (t Template) Contains(asin string) bool {
	asin = strings.TrimSpace(asin)
	if asin == "" {
		return false
	}
	for _, a := range t.ASINs {
		if strings.TrimSpace(a) == asin {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the template carries no identifiers
func (t Template) IsEmpty() bool { return len(t.ASINs) == 0 }

// TemplateConsumer is implemented by strategies that need the ASIN template.
// WithTemplate returns a configured copy; the receiver is left unchanged.
type TemplateConsumer interface {
	Strategy
	RequiresTemplate() bool
	WithTemplate(t Template) Strategy
}

// NeedsTemplate reports whether s cannot run without an ASIN template.
// A consumer may accept a template while still treating it as optional.
func NeedsTemplate(s Strategy) bool {
	tc, ok := s.(TemplateConsumer)
	return ok && tc.RequiresTemplate()
}

// ValidationResult is the outcome of Validate
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// NewValidationResult builds a result from collected messages
func NewValidationResult(errs, warnings []string) ValidationResult {
	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// CleanStats summarizes the Clean stage
type CleanStats struct {
	RowsIn     int
	RowsKept   int
	DataErrors []string
}

// ProcessStats summarizes the Process stage
type ProcessStats struct {
	Found   int
	Updated int
	// Details carries strategy-specific counters, keyed by a short label
	Details map[string]float64
}

// StrategyResult is the immutable record of one strategy's run
type StrategyResult struct {
	Strategy string
	Tables   []*workbook.Table
	Updated  workbook.RowSet
	Clean    CleanStats
	Stats    ProcessStats
}

// ValidationError aggregates the failed validations of a run
type ValidationError struct {
	Failures map[string][]string
	Order    []string
}

// NewValidationError creates an empty aggregate
func NewValidationError() *ValidationError {
	return &ValidationError{Failures: make(map[string][]string)}
}

// Add records the messages of one strategy
func (e *ValidationError) Add(strategy string, messages []string) {
	if _, exists := e.Failures[strategy]; !exists {
		e.Order = append(e.Order, strategy)
	}
	e.Failures[strategy] = append(e.Failures[strategy], messages...)
}

// Empty reports whether nothing failed
func (e *ValidationError) Empty() bool { return len(e.Order) == 0 }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Order))
	for _, s := range e.Order {
		parts = append(parts, fmt.Sprintf("%s: %s", s, strings.Join(e.Failures[s], "; ")))
	}
	return fmt.Sprintf("%v: %s", core.ErrValidation, strings.Join(parts, " | "))
}

func (e *ValidationError) Unwrap() error { return core.ErrValidation }
