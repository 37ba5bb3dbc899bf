// Package respond writes JSON bodies and maps domain errors onto HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/gate"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbook/internal/member"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

var badRequest = []error{
	ledger.ErrInvalidAmount,
	ledger.ErrInvalidKind,
	ledger.ErrEmptyReason,
	ledger.ErrInvalidDate,
	ledger.ErrInvalidMonth,
	gate.ErrInvalidLength,
	gate.ErrNonNumeric,
	gate.ErrMismatch,
	member.ErrEmptyName,
	importer.ErrNoHeader,
	importer.ErrNoRows,
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, gate.ErrRejected):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrLocked):
		return http.StatusForbidden
	case errors.Is(err, member.ErrUnknown):
		return http.StatusNotFound
	case errors.Is(err, gate.ErrAlreadySet), errors.Is(err, gate.ErrNotSet):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with its mapped status. Internal errors are logged and
// their message is not sent to the client.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}
