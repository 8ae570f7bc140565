package stock

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/movements", h.List)
	r.Post("/movements", h.Record)
	r.Get("/reconcile/{productID}", h.Reconcile)
}
