package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/stretchr/testify/assert"
)

func TestToResponse(t *testing.T) {
	errStale := errors.New("chain changed while mining")

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
		fields map[string]string
	}{
		{
			name:   "trusted",
			err:    errs.NewTrusted(errStale, http.StatusConflict),
			status: http.StatusConflict,
			msg:    "chain changed while mining",
		},
		{
			name:   "wrapped trusted",
			err:    fmt.Errorf("mining: %w", errs.NewTrusted(errStale, http.StatusServiceUnavailable)),
			status: http.StatusServiceUnavailable,
			msg:    "chain changed while mining",
		},
		{
			name:   "fields",
			err:    fmt.Errorf("validating data: %w", validate.FieldErrors{{Field: "amount", Err: "amount is a required field"}}),
			status: http.StatusBadRequest,
			msg:    "data validation error",
			fields: map[string]string{"amount": "amount is a required field"},
		},
		{
			name:   "untrusted",
			err:    errors.New("database secret"),
			status: http.StatusInternalServerError,
			msg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, status := errs.ToResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, resp.Error)
			assert.Equal(t, tt.fields, resp.Fields)
		})
	}
}

func TestTrustedUnwrap(t *testing.T) {
	errStale := errors.New("stale")
	err := errs.NewTrusted(errStale, http.StatusConflict)

	assert.True(t, errors.Is(err, errStale))
	assert.True(t, errs.IsTrusted(err))
	assert.Nil(t, errs.GetTrusted(errStale))
}
