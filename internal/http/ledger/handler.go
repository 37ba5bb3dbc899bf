package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/respond"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbook/internal/matching"
	"github.com/MrJamesThe3rd/pocketbook/internal/member"
)

// Handler serves one partition. The family handler reads the member from the
// request; the private handler always works on the private set and must be
// mounted behind token authentication.
type Handler struct {
	app     *app.App
	private bool
}

func NewFamilyHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

func NewPrivateHandler(a *app.App) *Handler {
	return &Handler{app: a, private: true}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.list)
	r.Post("/transactions", h.create)
	r.Delete("/transactions/{id}", h.delete)
	r.Get("/allocation", h.allocation)
	r.Post("/import", h.importCSV)
	r.Get("/export", h.exportCSV)
	r.Get("/reasons", h.reasons)
}

// state builds the explicit application state for a request.
func (h *Handler) state(memberID, month string) (app.State, error) {
	if err := ledger.ParseMonth(month); err != nil {
		return app.State{}, err
	}

	if h.private {
		return app.State{Private: true, Month: month}, nil
	}

	if memberID == "" {
		memberID = ledger.DefaultMemberID
	}

	if !h.app.Members.Known(memberID) {
		return app.State{}, fmt.Errorf("%w: %s", member.ErrUnknown, memberID)
	}

	return app.State{MemberID: memberID, Month: month}, nil
}

// owners maps family transaction ids to their member. It is nil for the
// private handler.
func (h *Handler) owners() map[int64]string {
	if h.private {
		return nil
	}

	family := h.app.Ledger.Family()

	owners := make(map[int64]string, len(family))
	for _, tx := range family {
		owners[tx.ID] = tx.MemberID
	}

	return owners
}

func (h *Handler) queryState(r *http.Request) (app.State, error) {
	q := r.URL.Query()
	return h.state(q.Get("member"), q.Get("month"))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	st, err := h.queryState(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	view := app.Snapshot(st, h.app.Ledger)

	respond.JSON(w, http.StatusOK, listResponse{
		Member:       st.MemberID,
		Month:        st.Month,
		Transactions: toResponseList(view.Transactions, h.owners()),
		Totals:       toTotalsResponse(view.Totals),
	})
}

func (h *Handler) allocation(w http.ResponseWriter, r *http.Request) {
	st, err := h.queryState(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	view := app.Snapshot(st, h.app.Ledger)

	respond.JSON(w, http.StatusOK, allocationResponse{
		Member: st.MemberID,
		Month:  st.Month,
		Blocks: toBlockResponseList(view.Blocks, h.owners()),
	})
}

type createTransactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   ledger.Kind     `json:"type"`
	Reason string          `json:"reason"`
	Date   ledger.Date     `json:"date"`
	Member string          `json:"member,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.state(req.Member, "")
	if err != nil {
		respond.Error(w, err)
		return
	}

	res, err := h.app.ApplyAs(r.Context(), st, app.AddTransaction{Params: ledger.CreateParams{
		Amount: req.Amount,
		Kind:   req.Type,
		Reason: req.Reason,
		Date:   req.Date,
	}})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponseList(res.Transactions, h.owners())[0])
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	st := app.State{Private: h.private, MemberID: ledger.DefaultMemberID}

	if _, err := h.app.ApplyAs(r.Context(), st, app.DeleteTransaction{ID: id}); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.state(r.FormValue("member"), "")
	if err != nil {
		respond.Error(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	cmd, err := app.ImportCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.app.ApplyAs(r.Context(), st, cmd)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported:     len(res.Transactions),
		Transactions: toResponseList(res.Transactions, h.owners()),
	})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	st, err := h.queryState(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	scope := st.MemberID
	if st.Private {
		scope = ledger.ScopePrivate.String()
	}

	view := app.Snapshot(st, h.app.Ledger)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(scope, st.Month)))

	if err := export.WriteCSV(w, view.Transactions); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// reasons suggests previously used reasons for the partition, ignoring the
// month filter.
func (h *Handler) reasons(w http.ResponseWriter, r *http.Request) {
	st, err := h.queryState(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	st.Month = ""
	view := app.Snapshot(st, h.app.Ledger)

	respond.JSON(w, http.StatusOK, matching.Suggest(view.Transactions, r.URL.Query().Get("prefix"), 10))
}
