package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for reports and the dashboard.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a reports handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/daily", h.Daily)
		r.Get("/weekly", h.Weekly)
		r.Get("/monthly", h.Monthly)
		r.Get("/summary", h.Summary)
		r.Get("/range", h.Range)
		r.Get("/chart", h.Chart)
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context(), shared.OwnerFromContext(r.Context()))
	if err != nil {
		h.logger.Error("dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, d)
}

func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid date")
			return
		}
		day = parsed
	}
	stats, err := h.service.Daily(r.Context(), shared.OwnerFromContext(r.Context()), day)
	if err != nil {
		h.logger.Error("daily report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}

func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	start := time.Now().AddDate(0, 0, -6)
	if v := r.URL.Query().Get("week_start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid week_start")
			return
		}
		start = parsed
	}
	stats, err := h.service.Weekly(r.Context(), shared.OwnerFromContext(r.Context()), start)
	if err != nil {
		h.logger.Error("weekly report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}

func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	stats, err := h.service.Monthly(r.Context(), shared.OwnerFromContext(r.Context()), month)
	if err != nil {
		h.logger.Error("monthly report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), shared.OwnerFromContext(r.Context()))
	if err != nil {
		h.logger.Error("summary report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, summary)
}

func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := time.Parse("2006-01-02", q.Get("start_date"))
	if err != nil {
		httpx.Fail(w, http.StatusUnprocessableEntity, "invalid start_date")
		return
	}
	to, err := time.Parse("2006-01-02", q.Get("end_date"))
	if err != nil {
		httpx.Fail(w, http.StatusUnprocessableEntity, "invalid end_date")
		return
	}
	stats, err := h.service.Range(r.Context(), shared.OwnerFromContext(r.Context()), from, to)
	if err != nil {
		h.logger.Error("range report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}

func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bucket := BucketDay
	if v := q.Get("period"); v != "" {
		bucket = Bucket(v)
		if bucket != BucketDay && bucket != BucketWeek && bucket != BucketMonth {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid period")
			return
		}
	}
	var from, to *time.Time
	if v := q.Get("start_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid start_date")
			return
		}
		from = &parsed
	}
	if v := q.Get("end_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Fail(w, http.StatusUnprocessableEntity, "invalid end_date")
			return
		}
		to = &parsed
	}
	if (from == nil) != (to == nil) {
		httpx.Fail(w, http.StatusUnprocessableEntity, "start_date and end_date go together")
		return
	}

	points, err := h.service.Chart(r.Context(), shared.OwnerFromContext(r.Context()), bucket, from, to)
	if err != nil {
		h.logger.Error("chart report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, points)
}
