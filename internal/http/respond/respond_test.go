package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/gate"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/respond"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbook/internal/member"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("line 3: %w", ledger.ErrInvalidAmount), http.StatusBadRequest},
		{"pin format", gate.ErrNonNumeric, http.StatusBadRequest},
		{"wrong pin", gate.ErrRejected, http.StatusUnauthorized},
		{"locked", app.ErrLocked, http.StatusForbidden},
		{"unknown member", fmt.Errorf("%w: x", member.ErrUnknown), http.StatusNotFound},
		{"pin exists", gate.ErrAlreadySet, http.StatusConflict},
		{"storage", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.err))
		})
	}
}

func TestError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	respond.Error(rec, errors.New("connection refused on 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}
