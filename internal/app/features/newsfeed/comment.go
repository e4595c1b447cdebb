// internal/app/features/newsfeed/comment.go
package newsfeed

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/system/authz"
	"github.com/quorumhq/quorum/internal/app/system/navigation"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/quorumhq/quorum/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateComment attaches a comment to a message. Any signed-in member
// may comment on any message they can see.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	msgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "messageID"))
	if err != nil {
		uierrors.RenderNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" || len(content) > models.MaxCommentLen {
		next := withParam(navigation.SafeNext(r, "/"), "error=comment")
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	if _, err := h.Messages.GetByID(ctx, msgID, messages.Scope{Authenticated: true}); err != nil {
		if !errors.Is(err, messages.ErrNotFound) {
			h.Log.Error("failed to load message for comment", zap.Error(err), zap.String("path", r.URL.Path))
		}
		uierrors.RenderNotFound(w, r)
		return
	}

	_, _, userID, _ := authz.UserCtx(r)
	c := &models.Comment{MessageID: msgID, AuthorID: userID, Content: content}
	if err := h.Comments.Create(ctx, c); err != nil {
		h.ErrLog.ServerError(w, r, "failed to create comment", err)
		return
	}

	next := withParam(navigation.SafeNext(r, "/"), "success=commented")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// withParam appends a query pair to a redirect target unless it is
// already present.
func withParam(target, pair string) string {
	if strings.Contains(target, pair) {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + pair
}

// CommentMethodNotAllowed answers GET on the comment endpoint, which is
// POST-only once signed in.
func (h *Handler) CommentMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
