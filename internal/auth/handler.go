package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// Handler wires HTTP endpoints for the login flow and owner profile.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	requireOwner func(http.Handler) http.Handler
	// exposeOTP echoes the issued code in the response. Enabled outside
	// production; there is no SMS gateway in development.
	exposeOTP bool
}

// NewHandler constructs an auth handler.
func NewHandler(logger *slog.Logger, service *Service, requireOwner func(http.Handler) http.Handler, exposeOTP bool) *Handler {
	return &Handler{logger: logger, service: service, requireOwner: requireOwner, exposeOTP: exposeOTP}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		// tighter limit on the login endpoints, keyed by client IP
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/otp/send", h.SendOTP)
		r.Post("/otp/verify", h.VerifyOTP)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.requireOwner)
		r.Get("/me", h.Me)
		r.Put("/me", h.UpdateMe)
	})
}

func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	code, err := h.service.SendOTP(r.Context(), req.MobileNumber)
	if err != nil {
		h.logger.Error("send otp", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	var data any
	if h.exposeOTP {
		data = map[string]string{"otp": code}
	}
	httpx.Message(w, "OTP sent successfully", data)
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	resp, err := h.service.VerifyOTP(r.Context(), req.MobileNumber, req.OTP)
	if err != nil {
		h.logger.Warn("verify otp", slog.String("mobile", req.MobileNumber), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Login successful", resp)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	owner, err := h.service.Me(r.Context(), shared.OwnerFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, owner)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	owner, err := h.service.UpdateMe(r.Context(), shared.OwnerFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("update profile", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Profile updated successfully", owner)
}
