// internal/app/features/workgroups/group.go
package workgroups

import (
	"errors"
	"html/template"
	"net/http"
	"sort"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/store/groups"
	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/system/paging"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
	"github.com/quorumhq/quorum/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DashboardVM is the view model for a workgroup's landing page.
type DashboardVM struct {
	viewdata.BaseVM
	Name        string
	Slug        string
	Category    string
	LogoURL     string
	NewsfeedURL string
	HasCalendar bool
	Created     string
}

// Dashboard shows a single workgroup. Unknown slugs get the not-found
// page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	g, ok := h.groupFromSlug(w, r)
	if !ok {
		return
	}

	vm := DashboardVM{
		BaseVM:      viewdata.NewBaseVM(r, g.Name, "/groups/"),
		Name:        g.Name,
		Slug:        g.Slug,
		Category:    g.CategoryName,
		LogoURL:     g.LogoURL,
		NewsfeedURL: g.NewsfeedURL,
		HasCalendar: g.CalendarID != nil,
		Created:     g.CreatedAt.Format("Jan 2, 2006"),
	}
	templates.Render(w, r, "workgroups/dashboard", vm)
}

// memberRow is one member on the roster, with the posts they hold.
type memberRow struct {
	Name     string
	Username string
	Email    string
	Posts    []string
}

// MembersVM is the view model for the member roster.
type MembersVM struct {
	viewdata.BaseVM
	GroupName string
	Slug      string
	Items     []memberRow
}

// Members lists everyone holding a post in any of the group's bureaus,
// past or present, each listed once with all their posts.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	g, ok := h.groupFromSlug(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	roster, err := h.Bureaus.PostsInGroup(ctx, g.ID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load group roster", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(roster))
	seen := make(map[primitive.ObjectID]bool, len(roster))
	for _, e := range roster {
		if !seen[e.UserID] {
			seen[e.UserID] = true
			ids = append(ids, e.UserID)
		}
	}

	members, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load group members", err)
		return
	}

	postsByUser := make(map[primitive.ObjectID][]string, len(ids))
	for _, e := range roster {
		postsByUser[e.UserID] = append(postsByUser[e.UserID], e.PostName)
	}

	rows := make([]memberRow, 0, len(ids))
	for _, id := range ids {
		u, ok := members[id]
		if !ok {
			continue
		}
		rows = append(rows, memberRow{
			Name:     u.DisplayName(),
			Username: u.Username,
			Email:    u.Email,
			Posts:    postsByUser[id],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	vm := MembersVM{
		BaseVM:    viewdata.NewBaseVM(r, g.Name+" Members", "/"+g.Slug+"/dashboard"),
		GroupName: g.Name,
		Slug:      g.Slug,
		Items:     rows,
	}
	templates.Render(w, r, "workgroups/members", vm)
}

// newsRow is one message on the group news page.
type newsRow struct {
	ID       string
	Title    string
	Content  template.HTML
	Author   string
	Priority bool
	Posted   string
}

// NewsVM is the view model for the group news page.
type NewsVM struct {
	viewdata.BaseVM
	GroupName string
	Slug      string
	Items     []newsRow
	Page      int
	HasNext   bool
	HasPrev   bool
	NextPage  int
	PrevPage  int
}

// News shows a workgroup's messages, newest first, eight per page.
// The route requires sign-in, so the scope is always authenticated.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	g, ok := h.groupFromSlug(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	page := paging.ParsePage(r, paging.GroupNewsPageSize)
	msgs, hasNext, err := h.Messages.ListByGroup(ctx, g.ID, messages.Scope{Authenticated: true}, page)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load group news", err)
		return
	}

	authorIDs := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		authorIDs = append(authorIDs, m.AuthorID)
	}
	authors, err := h.Users.GetByIDs(ctx, authorIDs)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load message authors", err)
		return
	}

	rows := make([]newsRow, 0, len(msgs))
	for _, m := range msgs {
		row := newsRow{
			ID:       m.ID.Hex(),
			Title:    m.Title,
			Content:  template.HTML(m.Content),
			Priority: m.Importance == models.ImportancePriority,
			Posted:   m.PubDate.Format("Jan 2, 2006 3:04 PM"),
		}
		if a, ok := authors[m.AuthorID]; ok {
			row.Author = a.DisplayName()
		}
		rows = append(rows, row)
	}

	vm := NewsVM{
		BaseVM:    viewdata.NewBaseVM(r, g.Name+" News", "/"+g.Slug+"/dashboard"),
		GroupName: g.Name,
		Slug:      g.Slug,
		Items:     rows,
		Page:      page.Number,
		HasNext:   hasNext,
		HasPrev:   page.Number > 1,
		NextPage:  page.Number + 1,
		PrevPage:  page.Number - 1,
	}
	templates.Render(w, r, "workgroups/news", vm)
}

// groupFromSlug resolves the {slug} route parameter, rendering the
// not-found page for unknown or deleted groups.
func (h *Handler) groupFromSlug(w http.ResponseWriter, r *http.Request) (*models.Group, bool) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	g, err := h.Groups.GetBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, groups.ErrNotFound) {
			h.Log.Error("failed to load group", zap.Error(err), zap.String("slug", slug))
		}
		uierrors.RenderNotFound(w, r)
		return nil, false
	}
	return g, true
}
