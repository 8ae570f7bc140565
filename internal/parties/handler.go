package parties

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for parties.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a parties handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListPartiesRequest{OwnerID: shared.OwnerFromContext(r.Context())}
	q := r.URL.Query()
	if v := q.Get("type"); v != "" {
		t := PartyType(v)
		if t != TypeCustomer && t != TypeSupplier && t != TypeBoth {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid type")
			return
		}
		req.Type = &t
	}
	if v := q.Get("status"); v != "" {
		s := Status(v)
		if s != StatusActive && s != StatusInactive {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid status")
			return
		}
		req.Status = &s
	}
	if v := q.Get("search"); v != "" {
		req.Search = &v
	}

	parties, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list parties", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, parties)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePartyRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Create(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create party", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Party created successfully", p)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	p, err := h.service.Get(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req UpdatePartyRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Update(r.Context(), shared.OwnerFromContext(r.Context()), id, req)
	if err != nil {
		h.logger.Error("update party", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Party updated successfully", p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	result, err := h.service.Delete(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		h.logger.Error("delete party", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Party and related records deleted successfully", result)
}
