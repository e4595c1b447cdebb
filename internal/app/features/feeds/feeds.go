// internal/app/features/feeds/feeds.go
package feeds

import (
	"net/http"

	"github.com/gorilla/feeds"
	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/store/users"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// latestCount is how many messages the RSS feed carries.
const latestCount = 20

// Handler serves the RSS feed of the latest messages. The route sits
// behind sign-in, so the feed includes private messages.
type Handler struct {
	Messages *messages.Store
	Users    *users.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger

	SiteName string
	BaseURL  string
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger, siteName, baseURL string) *Handler {
	return &Handler{
		Messages: messages.NewStore(db),
		Users:    users.NewStore(db),
		Log:      logger,
		ErrLog:   errLog,
		SiteName: siteName,
		BaseURL:  baseURL,
	}
}

// Latest renders the newest messages as RSS.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	msgs, err := h.Messages.Latest(ctx, messages.Scope{Authenticated: true}, latestCount)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to load latest messages", err)
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

	feed := &feeds.Feed{
		Title:       h.SiteName + " - latest messages",
		Link:        &feeds.Link{Href: h.BaseURL + "/"},
		Description: "Latest messages from the newsfeed",
	}
	for _, m := range msgs {
		item := &feeds.Item{
			Id:          m.ID.Hex(),
			Title:       m.Title,
			Link:        &feeds.Link{Href: h.BaseURL + "/"},
			Description: m.Content,
			Created:     m.PubDate,
		}
		if a, ok := authors[m.AuthorID]; ok {
			item.Author = &feeds.Author{Name: a.DisplayName(), Email: a.Email}
		}
		feed.Items = append(feed.Items, item)
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(w); err != nil {
		h.Log.Error("failed to write rss", zap.Error(err))
	}
}
