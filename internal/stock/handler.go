package stock

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for the stock ledger.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a stock handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListMovementsRequest{OwnerID: shared.OwnerFromContext(r.Context())}
	q := r.URL.Query()
	if v := q.Get("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid product_id")
			return
		}
		req.ProductID = &id
	}
	if v := q.Get("type"); v != "" {
		t := MovementType(v)
		if t != MovementIn && t != MovementOut {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid type")
			return
		}
		req.Type = &t
	}

	movements, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list stock movements", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, movements)
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordMovementRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	m, err := h.service.Record(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("record stock movement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Stock movement recorded successfully", m)
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	result, err := h.service.Reconcile(r.Context(), shared.OwnerFromContext(r.Context()), productID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, result)
}
