package spending

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/personal-expenses", func(r chi.Router) {
		r.Get("/", h.ListExpenses)
		r.Post("/", h.CreateExpense)
		r.Get("/{id}", h.ShowExpense)
		r.Put("/{id}", h.UpdateExpense)
		r.Delete("/{id}", h.DeleteExpense)
	})
	r.Route("/personal-purchases", func(r chi.Router) {
		r.Get("/", h.ListPurchases)
		r.Post("/", h.CreatePurchase)
		r.Get("/{id}", h.ShowPurchase)
		r.Put("/{id}", h.UpdatePurchase)
		r.Delete("/{id}", h.DeletePurchase)
	})
}
