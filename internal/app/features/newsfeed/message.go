// internal/app/features/newsfeed/message.go
package newsfeed

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/policy/messagepolicy"
	"github.com/quorumhq/quorum/internal/app/policy/workgrouppolicy"
	"github.com/quorumhq/quorum/internal/app/store/groups"
	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/system/authz"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
	"github.com/quorumhq/quorum/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// groupOption is a workgroup the author may post to.
type groupOption struct {
	ID   string
	Name string
}

// FormVM is the view model for the message create/edit form.
type FormVM struct {
	viewdata.BaseVM
	ID         string
	MsgTitle   string
	Content    string
	GroupID    string
	Public     bool
	Priority   bool
	Groups     []groupOption
	Error      string
	TitleLimit int
}

// ShowNew displays the new message form with the groups the author may
// post to.
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	opts, err := h.postableGroups(r)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load postable groups", err)
		return
	}

	vm := FormVM{
		BaseVM:     viewdata.NewBaseVM(r, "New Message", "/"),
		Public:     true,
		Groups:     opts,
		TitleLimit: models.MaxMessageTitleLen,
	}
	templates.Render(w, r, "newsfeed/message_form", vm)
}

// Create publishes a message into the feed.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	form, formErr := h.parseMessageForm(r)
	if formErr != "" {
		h.rerenderForm(w, r, "New Message", "", form, formErr)
		return
	}

	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	allowed, err := workgrouppolicy.CanPost(ctx, h.Bureaus, userID, form.groupID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to check posting rights", err)
		return
	}
	if !allowed {
		h.rerenderForm(w, r, "New Message", "", form, "You are not a member of that workgroup.")
		return
	}

	m := &models.Message{
		GroupID:    form.groupID,
		AuthorID:   userID,
		Title:      form.title,
		Content:    form.content,
		Public:     form.public,
		Importance: form.importance,
	}
	if err := h.Messages.Create(ctx, m); err != nil {
		h.Log.Error("failed to create message", zap.Error(err), zap.String("path", r.URL.Path))
		h.rerenderForm(w, r, "New Message", "", form, "Failed to publish the message.")
		return
	}

	http.Redirect(w, r, "/?success=created", http.StatusSeeOther)
}

// ShowEdit displays the edit form. Non-authors get the not-found page.
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ownedMessage(w, r)
	if !ok {
		return
	}

	opts, err := h.postableGroups(r)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load postable groups", err)
		return
	}

	vm := FormVM{
		BaseVM:     viewdata.NewBaseVM(r, "Edit Message", "/"),
		ID:         m.ID.Hex(),
		MsgTitle:   m.Title,
		Content:    m.Content,
		GroupID:    m.GroupID.Hex(),
		Public:     m.Public,
		Priority:   m.Importance == models.ImportancePriority,
		Groups:     opts,
		TitleLimit: models.MaxMessageTitleLen,
	}
	templates.Render(w, r, "newsfeed/message_form", vm)
}

// Update saves an edit. Non-authors get the not-found page.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ownedMessage(w, r)
	if !ok {
		return
	}

	form, formErr := h.parseMessageForm(r)
	if formErr != "" {
		h.rerenderForm(w, r, "Edit Message", m.ID.Hex(), form, formErr)
		return
	}

	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	_, _, userID, _ := authz.UserCtx(r)
	allowed, err := workgrouppolicy.CanPost(ctx, h.Bureaus, userID, form.groupID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to check posting rights", err)
		return
	}
	if !allowed {
		h.rerenderForm(w, r, "Edit Message", m.ID.Hex(), form, "You are not a member of that workgroup.")
		return
	}

	m.Title = form.title
	m.Content = form.content
	m.GroupID = form.groupID
	m.Public = form.public
	m.Importance = form.importance

	if err := h.Messages.Update(ctx, m); err != nil {
		h.Log.Error("failed to update message", zap.Error(err), zap.String("path", r.URL.Path))
		h.rerenderForm(w, r, "Edit Message", m.ID.Hex(), form, "Failed to save changes.")
		return
	}

	http.Redirect(w, r, "/?success=updated", http.StatusSeeOther)
}

// DeleteVM is the view model for the delete confirmation page.
type DeleteVM struct {
	viewdata.BaseVM
	ID       string
	MsgTitle string
}

// ConfirmDelete shows the delete confirmation page. Non-authors get
// the not-found page.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ownedMessage(w, r)
	if !ok {
		return
	}

	vm := DeleteVM{
		BaseVM:   viewdata.NewBaseVM(r, "Delete Message", "/"),
		ID:       m.ID.Hex(),
		MsgTitle: m.Title,
	}
	templates.Render(w, r, "newsfeed/message_delete", vm)
}

// Delete removes a message and its comments. Non-authors get the
// not-found page.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ownedMessage(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	if err := h.Comments.DeleteByMessage(ctx, m.ID); err != nil {
		h.ErrLog.ServerError(w, r, "failed to delete comments", err)
		return
	}
	if err := h.Messages.Delete(ctx, m.ID); err != nil {
		h.ErrLog.ServerError(w, r, "failed to delete message", err)
		return
	}

	http.Redirect(w, r, "/?success=deleted", http.StatusSeeOther)
}

// ownedMessage loads the message in the URL and verifies the current
// user wrote it. On any failure it renders the not-found page, so a
// caller cannot distinguish someone else's message from a missing one.
func (h *Handler) ownedMessage(w http.ResponseWriter, r *http.Request) (*models.Message, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r)
		return nil, false
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id, messages.Scope{Authenticated: true})
	if err != nil {
		if !errors.Is(err, messages.ErrNotFound) {
			h.Log.Error("failed to load message", zap.Error(err), zap.String("path", r.URL.Path))
		}
		uierrors.RenderNotFound(w, r)
		return nil, false
	}

	_, _, userID, _ := authz.UserCtx(r)
	if !messagepolicy.CanModify(m, userID) {
		uierrors.RenderNotFound(w, r)
		return nil, false
	}
	return m, true
}

type messageForm struct {
	title      string
	content    string
	groupID    primitive.ObjectID
	public     bool
	importance models.Importance
}

func (h *Handler) parseMessageForm(r *http.Request) (messageForm, string) {
	var f messageForm
	if err := r.ParseForm(); err != nil {
		return f, "Invalid form submission."
	}

	f.title = strings.TrimSpace(r.FormValue("title"))
	f.content = strings.TrimSpace(r.FormValue("content"))
	f.public = r.FormValue("public") == "on"
	if r.FormValue("priority") == "on" {
		f.importance = models.ImportancePriority
	}

	if f.title == "" {
		return f, "Title is required."
	}
	if len(f.title) > models.MaxMessageTitleLen {
		return f, "Title is too long."
	}
	if f.content == "" {
		return f, "Content is required."
	}

	gid, err := primitive.ObjectIDFromHex(r.FormValue("group_id"))
	if err != nil {
		return f, "Pick a workgroup."
	}
	f.groupID = gid
	return f, ""
}

func (h *Handler) rerenderForm(w http.ResponseWriter, r *http.Request, title, id string, f messageForm, msg string) {
	opts, err := h.postableGroups(r)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load postable groups", err)
		return
	}

	vm := FormVM{
		BaseVM:     viewdata.NewBaseVM(r, title, "/"),
		ID:         id,
		MsgTitle:   f.title,
		Content:    f.content,
		Public:     f.public,
		Priority:   f.importance == models.ImportancePriority,
		Groups:     opts,
		Error:      msg,
		TitleLimit: models.MaxMessageTitleLen,
	}
	if !f.groupID.IsZero() {
		vm.GroupID = f.groupID.Hex()
	}
	templates.Render(w, r, "newsfeed/message_form", vm)
}

// postableGroups lists the workgroups the current user may post to, in
// directory name order.
func (h *Handler) postableGroups(r *http.Request) ([]groupOption, error) {
	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	_, _, userID, _ := authz.UserCtx(r)

	all, err := h.Groups.List(ctx, groups.SortByName)
	if err != nil {
		return nil, err
	}

	candidates := make([]primitive.ObjectID, 0, len(all))
	byID := make(map[primitive.ObjectID]models.Group, len(all))
	for _, g := range all {
		candidates = append(candidates, g.ID)
		byID[g.ID] = g
	}

	mine, err := workgrouppolicy.PostableGroups(ctx, h.Bureaus, userID, candidates)
	if err != nil {
		return nil, err
	}

	opts := make([]groupOption, 0, len(mine))
	for _, id := range mine {
		g := byID[id]
		opts = append(opts, groupOption{ID: g.ID.Hex(), Name: g.Name})
	}
	return opts, nil
}
