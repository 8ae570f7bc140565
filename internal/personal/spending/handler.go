package spending

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for personal expenses and purchases.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a spending handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) listRequest(r *http.Request) (ListSpendingRequest, bool) {
	req := ListSpendingRequest{OwnerID: shared.OwnerFromContext(r.Context())}
	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		req.Category = &v
	}
	if v := q.Get("start_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return req, false
		}
		req.DateFrom = &d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return req, false
		}
		req.DateTo = &d
	}
	return req, true
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	req, ok := h.listRequest(r)
	if !ok {
		httpx.Fail(w, http.StatusUnprocessableEntity, "invalid date filter")
		return
	}
	list, err := h.service.ListExpenses(r.Context(), req)
	if err != nil {
		h.logger.Error("list expenses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, list)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	e, err := h.service.CreateExpense(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create expense", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Expense created successfully", e)
}

func (h *Handler) ShowExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	e, err := h.service.GetExpense(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, e)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req UpdateExpenseRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	e, err := h.service.UpdateExpense(r.Context(), shared.OwnerFromContext(r.Context()), id, req)
	if err != nil {
		h.logger.Error("update expense", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Expense updated successfully", e)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	if err := h.service.DeleteExpense(r.Context(), shared.OwnerFromContext(r.Context()), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Expense deleted successfully", nil)
}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	req, ok := h.listRequest(r)
	if !ok {
		httpx.Fail(w, http.StatusUnprocessableEntity, "invalid date filter")
		return
	}
	list, err := h.service.ListPurchases(r.Context(), req)
	if err != nil {
		h.logger.Error("list purchases", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, list)
}

func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.CreatePurchase(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create purchase", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Purchase created successfully", p)
}

func (h *Handler) ShowPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	p, err := h.service.GetPurchase(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req UpdatePurchaseRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.UpdatePurchase(r.Context(), shared.OwnerFromContext(r.Context()), id, req)
	if err != nil {
		h.logger.Error("update purchase", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Purchase updated successfully", p)
}

func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	if err := h.service.DeletePurchase(r.Context(), shared.OwnerFromContext(r.Context()), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Purchase deleted successfully", nil)
}
