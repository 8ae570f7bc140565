package invoices

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for invoices.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs an invoices handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListInvoicesRequest{OwnerID: shared.OwnerFromContext(r.Context())}
	q := r.URL.Query()
	if v := q.Get("party_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid party_id")
			return
		}
		req.PartyID = &id
	}
	if v := q.Get("payment_status"); v != "" {
		status := PaymentStatus(v)
		if status != StatusUnpaid && status != StatusPartiallyPaid && status != StatusPaid {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid payment_status")
			return
		}
		req.PaymentStatus = &status
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

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	inv, err := h.service.Create(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Invoice created successfully", inv)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	inv, err := h.service.Get(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, inv)
}
