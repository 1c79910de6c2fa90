package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Expected, recoverable failures reported back to the caller
	ErrValidation      = errors.New("validation failed")
	ErrMissingSheet    = fmt.Errorf("%w: missing sheet", ErrValidation)
	ErrMissingColumn   = fmt.Errorf("%w: missing column", ErrValidation)
	ErrMissingTemplate = fmt.Errorf("%w: missing template", ErrValidation)
	ErrLimitExceeded   = fmt.Errorf("%w: limit exceeded", ErrValidation)

	// Row-level value problems found while cleaning
	ErrData = errors.New("data error")

	// Unexpected failures inside a strategy stage
	ErrProcessing = errors.New("processing failed")

	// Configuration errors
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Error constructors with context
func NewMissingSheetError(sheet string) error {
	return fmt.Errorf("%w %q", ErrMissingSheet, sheet)
}

func NewMissingColumnError(sheet, column string) error {
	return fmt.Errorf("%w %q in sheet %q", ErrMissingColumn, column, sheet)
}

func NewDataError(sheet string, row int, column string, reason string) error {
	return fmt.Errorf("%w: sheet %q row %d column %q: %s", ErrData, sheet, row, column, reason)
}

func NewProcessingError(strategy string, stage string, err error) error {
	return fmt.Errorf("%w: %s.%s: %v", ErrProcessing, strategy, stage, err)
}

func NewUnknownStrategyError(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsDataError(err error) bool {
	return errors.Is(err, ErrData)
}

func IsProcessingError(err error) bool {
	return errors.Is(err, ErrProcessing)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownStrategy)
}
