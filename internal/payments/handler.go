package payments

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for payments.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a payments handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListPaymentsRequest{OwnerID: shared.OwnerFromContext(r.Context())}
	q := r.URL.Query()
	if v := q.Get("party_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid party_id")
			return
		}
		req.PartyID = &id
	}
	if v := q.Get("invoice_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid invoice_id")
			return
		}
		req.InvoiceID = &id
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
		h.logger.Error("list payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, list)
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Record(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("record payment", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Payment recorded successfully", p)
}
