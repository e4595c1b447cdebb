// internal/app/features/logout/logout.go
package logout

import (
	"net/http"

	"github.com/quorumhq/quorum/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler clears the session.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessionMgr, Log: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/logout", h.Logout)
	r.Post("/logout", h.Logout)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("failed to clear session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
