// internal/app/features/newsfeed/feed.go
package newsfeed

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/system/authz"
	"github.com/quorumhq/quorum/internal/app/system/paging"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
	"github.com/quorumhq/quorum/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// commentRow is a comment rendered under a feed message.
type commentRow struct {
	ID      string
	Author  string
	Content string
	Posted  string
}

// messageRow is one message in the feed.
type messageRow struct {
	ID        string
	Title     string
	Content   template.HTML
	Author    string
	GroupName string
	GroupSlug string
	Priority  bool
	Public    bool
	Posted    string
	CanModify bool
	Comments  []commentRow
}

// FeedVM is the view model for the newsfeed page.
type FeedVM struct {
	viewdata.BaseVM
	Items    []messageRow
	Page     int
	HasNext  bool
	HasPrev  bool
	NextPage int
	PrevPage int
}

// Feed renders the site-wide newsfeed. Anonymous visitors see only
// public messages.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	_, _, userID, signedIn := authz.UserCtx(r)
	scope := messages.Scope{Authenticated: signedIn}
	page := paging.ParsePage(r, h.FeedSize)

	msgs, hasNext, err := h.Messages.List(ctx, scope, page)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load newsfeed", err)
		return
	}

	rows, err := h.buildRows(r, msgs, userID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to assemble newsfeed", err)
		return
	}

	vm := FeedVM{
		BaseVM:   viewdata.NewBaseVM(r, "Newsfeed", "/"),
		Items:    rows,
		Page:     page.Number,
		HasNext:  hasNext,
		HasPrev:  page.Number > 1,
		NextPage: page.Number + 1,
		PrevPage: page.Number - 1,
	}
	templates.Render(w, r, "newsfeed/feed", vm)
}

// buildRows joins messages with authors, groups, and comments for
// display.
func (h *Handler) buildRows(r *http.Request, msgs []models.Message, viewerID primitive.ObjectID) ([]messageRow, error) {
	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	msgIDs := make([]primitive.ObjectID, 0, len(msgs))
	authorIDs := make([]primitive.ObjectID, 0, len(msgs))
	groupIDs := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		msgIDs = append(msgIDs, m.ID)
		authorIDs = append(authorIDs, m.AuthorID)
		groupIDs = append(groupIDs, m.GroupID)
	}

	authors, err := h.Users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	groupsByID, err := h.Groups.ListByIDs(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	commentsByMsg, err := h.Comments.ListByMessages(ctx, msgIDs)
	if err != nil {
		return nil, err
	}

	commentAuthorIDs := make([]primitive.ObjectID, 0)
	for _, cs := range commentsByMsg {
		for _, c := range cs {
			commentAuthorIDs = append(commentAuthorIDs, c.AuthorID)
		}
	}
	commentAuthors, err := h.Users.GetByIDs(ctx, commentAuthorIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]messageRow, 0, len(msgs))
	for _, m := range msgs {
		row := messageRow{
			ID:        m.ID.Hex(),
			Title:     m.Title,
			Content:   template.HTML(m.Content),
			Priority:  m.Importance == models.ImportancePriority,
			Public:    m.Public,
			Posted:    m.PubDate.Format("Jan 2, 2006 3:04 PM"),
			CanModify: !viewerID.IsZero() && m.AuthorID == viewerID,
		}
		if a, ok := authors[m.AuthorID]; ok {
			row.Author = a.DisplayName()
		}
		if g, ok := groupsByID[m.GroupID]; ok {
			row.GroupName = g.Name
			row.GroupSlug = g.Slug
		}
		for _, c := range commentsByMsg[m.ID] {
			cr := commentRow{
				ID:      c.ID.Hex(),
				Content: c.Content,
				Posted:  c.PubDate.Format("Jan 2, 2006 3:04 PM"),
			}
			if a, ok := commentAuthors[c.AuthorID]; ok {
				cr.Author = a.DisplayName()
			}
			row.Comments = append(row.Comments, cr)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
