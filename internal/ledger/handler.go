package ledger

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for the transaction ledger.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a ledger handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListTransactionsRequest{OwnerID: shared.OwnerFromContext(r.Context())}
	q := r.URL.Query()
	if v := q.Get("party_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid party_id")
			return
		}
		req.PartyID = &id
	}
	if v := q.Get("type"); v != "" {
		t := TransactionType(v)
		if t != TypeDebit && t != TypeCredit {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid type")
			return
		}
		req.Type = &t
	}
	if v := q.Get("start_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid start_date")
			return
		}
		req.DateFrom = &d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid end_date")
			return
		}
		req.DateTo = &d
	}
	if v := q.Get("page"); v != "" {
		req.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("per_page"); v != "" {
		req.PerPage, _ = strconv.Atoi(v)
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list transactions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	txn, err := h.service.Create(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create transaction", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Transaction created successfully", txn)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	txn, err := h.service.Get(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, txn)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req UpdateTransactionRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	txn, err := h.service.Update(r.Context(), shared.OwnerFromContext(r.Context()), id, req)
	if err != nil {
		h.logger.Error("update transaction", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Transaction updated successfully", txn)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), shared.OwnerFromContext(r.Context()), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Transaction deleted successfully", nil)
}
