// internal/app/features/workgroups/routes.go
package workgroups

import (
	"github.com/quorumhq/quorum/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register wires the workgroup routes onto the root router. The slug
// routes live at the top level, so they are registered explicitly and
// after the static routes; chi gives literal segments priority over
// the {slug} parameter.
func (h *Handler) Register(r chi.Router, sessionMgr *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sessionMgr.RequireSignedIn)

		pr.Get("/groups/", h.List)
		pr.Get("/{slug}/dashboard", h.Dashboard)
		pr.Get("/{slug}/members", h.Members)
		pr.Get("/{slug}/news", h.News)
	})
}
