// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
)

type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler renders error pages. No DB needed.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the not-found page with a 404 status. Ownership
// denials use the same page so protected and missing resources are
// indistinguishable.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r)
}

func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Not found", "/"),
		Message: "The page you asked for does not exist.",
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "errors/not_found", data)
}

// RenderUnauthorized shows a "sign in required" page.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Sign in required", "/login"),
		Message: "Please sign in to continue.",
	}
	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "errors/forbidden", data)
}
