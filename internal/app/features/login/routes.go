// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Register wires the sign-in routes onto the root router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/login", h.ShowForm)
	r.Post("/login", h.Submit)
}
