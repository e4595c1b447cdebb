// internal/app/features/directory/routes.go
package directory

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the directory routes. The caller wraps them in
// the signed-in middleware; the directory is never public.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Search)
}
