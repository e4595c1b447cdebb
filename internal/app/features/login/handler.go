// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/store/users"
	"github.com/quorumhq/quorum/internal/app/system/auth"
	"github.com/quorumhq/quorum/internal/app/system/navigation"
	"github.com/quorumhq/quorum/internal/app/system/normalize"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler owns the password sign-in flow.
type Handler struct {
	Users    *users.Store
	Sessions *auth.SessionManager
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users.NewStore(db),
		Sessions: sessionMgr,
		Log:      logger,
		ErrLog:   errLog,
	}
}

// FormVM is the view model for the login page.
type FormVM struct {
	viewdata.BaseVM
	Username string
	Return   string
	Error    string
}

// ShowForm displays the sign-in page. Already signed-in users are sent
// home.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	vm := FormVM{
		BaseVM: viewdata.NewBaseVM(r, "Sign in", "/"),
		Return: r.URL.Query().Get("return"),
	}
	templates.Render(w, r, "login/form", vm)
}

// Submit checks the password and opens a session. Failures re-render
// the form with a single generic message.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := normalize.Username(r.FormValue("username"))
	password := r.FormValue("password")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			h.ErrLog.ServerError(w, r, "login lookup failed", err)
			return
		}
		h.renderFailure(w, r, username)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.renderFailure(w, r, username)
		return
	}

	if err := h.Sessions.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.ServerError(w, r, "failed to open session", err)
		return
	}

	h.Log.Info("user signed in", zap.String("username", u.Username))
	http.Redirect(w, r, navigation.SafeReturnTo(r, "/"), http.StatusSeeOther)
}

func (h *Handler) renderFailure(w http.ResponseWriter, r *http.Request, username string) {
	vm := FormVM{
		BaseVM:   viewdata.NewBaseVM(r, "Sign in", "/"),
		Username: username,
		Return:   r.FormValue("return"),
		Error:    "Unknown username or wrong password.",
	}
	templates.Render(w, r, "login/form", vm)
}
