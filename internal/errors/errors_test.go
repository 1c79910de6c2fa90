package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"adsopt/domain/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"nil", nil, "", http.StatusOK},
		{"missing sheet", core.NewMissingSheetError("Portfolios"), CodeValidationError, http.StatusUnprocessableEntity},
		{"limit", fmt.Errorf("upload: %w", core.ErrLimitExceeded), CodeValidationError, http.StatusUnprocessableEntity},
		{"unknown strategy", core.NewUnknownStrategyError("nope"), CodeInvalidInput, http.StatusBadRequest},
		{"processing", core.NewProcessingError("top_campaigns", "process", stderrors.New("boom")), CodeProcessingError, http.StatusInternalServerError},
		{"app error", InvalidInput("no file"), CodeInvalidInput, http.StatusBadRequest},
		{"busy", Busy("too many runs"), CodeBusy, http.StatusServiceUnavailable},
		{"plain", stderrors.New("disk on fire"), CodeInternalError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, Classify(tt.err))
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(core.NewMissingColumnError("Portfolios", "Portfolio ID"), "read input")
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.ErrorIs(t, err, core.ErrMissingColumn)
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, stderrors.New("gone"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("x")))
}
