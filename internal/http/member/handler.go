package member

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/respond"
	"github.com/MrJamesThe3rd/pocketbook/internal/member"
)

type Handler struct {
	app *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/selected", h.selected)
	r.Put("/selected", h.selectMember)
}

type memberResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

func toResponse(m member.Member) memberResponse {
	return memberResponse{ID: m.ID, Name: m.Name, Custom: m.Custom}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	members := h.app.Members.List()

	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = toResponse(m)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createMemberRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.app.ApplyAs(r.Context(), h.app.State(), app.AddMember{Name: req.Name})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(*res.Member))
}

type selectedResponse struct {
	ID string `json:"id"`
}

func (h *Handler) selected(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, selectedResponse{ID: h.app.Members.Selected()})
}

type selectRequest struct {
	ID string `json:"id"`
}

func (h *Handler) selectMember(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.app.ApplyAs(r.Context(), h.app.State(), app.SelectMember{MemberID: req.ID}); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
