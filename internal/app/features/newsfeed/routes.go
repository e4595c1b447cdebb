// internal/app/features/newsfeed/routes.go
package newsfeed

import (
	"github.com/quorumhq/quorum/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register wires the newsfeed routes onto the root router. The feed is
// public; authoring and commenting require a signed-in member.
func (h *Handler) Register(r chi.Router, sessionMgr *auth.SessionManager) {
	r.Get("/", h.Feed)

	r.Group(func(pr chi.Router) {
		pr.Use(sessionMgr.RequireSignedIn)

		pr.Get("/add", h.ShowNew)
		pr.Post("/add", h.Create)
		pr.Get("/edit/{id}", h.ShowEdit)
		pr.Post("/edit/{id}", h.Update)
		pr.Get("/delete/{id}", h.ConfirmDelete)
		pr.Post("/delete/{id}", h.Delete)

		pr.Post("/comment/{messageID}", h.CreateComment)
		// GET on the comment endpoint is 405 for signed-in users;
		// anonymous callers are redirected to login by the middleware
		// before this handler runs.
		pr.Get("/comment/{messageID}", h.CommentMethodNotAllowed)
	})
}
