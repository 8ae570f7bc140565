package contacts

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for personal contacts.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a contacts handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListContactsRequest{OwnerID: shared.OwnerFromContext(r.Context())}
	q := r.URL.Query()
	if v := q.Get("relationship"); v != "" {
		rel := Relationship(v)
		switch rel {
		case RelationshipFriend, RelationshipFamily, RelationshipColleague, RelationshipNeighbor, RelationshipOther:
			req.Relationship = &rel
		default:
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid relationship")
			return
		}
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

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list personal contacts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	c, err := h.service.Create(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create personal contact", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Contact created successfully", c)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	c, err := h.service.Get(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req UpdateContactRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	c, err := h.service.Update(r.Context(), shared.OwnerFromContext(r.Context()), id, req)
	if err != nil {
		h.logger.Error("update personal contact", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Contact updated successfully", c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	deleted, err := h.service.Delete(r.Context(), shared.OwnerFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Contact deleted successfully", map[string]int64{"transactions_deleted": deleted})
}
