// Package private serves the PIN gate over HTTP and guards the private ledger
// routes with signed bearer tokens.
package private

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/gate"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/respond"
)

type Handler struct {
	app    *app.App
	tokens *Tokens
}

func NewHandler(a *app.App, tokens *Tokens) *Handler {
	return &Handler{app: a, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/status", h.status)
	r.Post("/unlock", h.unlock)
}

type statusResponse struct {
	PINSet bool `json:"pin_set"`
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, statusResponse{PINSet: h.app.Gate.State() == gate.StatePINSet})
}

type unlockRequest struct {
	PIN     string `json:"pin"`
	Confirm string `json:"confirm,omitempty"`
}

type unlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// unlock sets the PIN on first use (pin and confirm must match) and verifies
// it afterwards. Either way success returns a private token.
func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.app.ApplyAs(r.Context(), app.State{}, app.GateSubmit{PIN: req.PIN, Confirm: req.Confirm}); err != nil {
		respond.Error(w, err)
		return
	}

	token, expires, err := h.tokens.Issue()
	if err != nil {
		respond.Error(w, err)
		return
	}

	slog.Info("private mode unlocked", "expires_at", expires)

	respond.JSON(w, http.StatusOK, unlockResponse{Token: token, ExpiresAt: expires})
}
