// internal/app/features/newsfeed/handler.go
package newsfeed

import (
	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/store/bureaus"
	"github.com/quorumhq/quorum/internal/app/store/comments"
	"github.com/quorumhq/quorum/internal/app/store/groups"
	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the newsfeed handlers: the feed itself, message
// authoring, and comments.
type Handler struct {
	DB       *mongo.Database
	Messages *messages.Store
	Comments *comments.Store
	Users    *users.Store
	Groups   *groups.Store
	Bureaus  *bureaus.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger

	// FeedSize is the configured page size, already clamped.
	FeedSize int
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger, feedSize int) *Handler {
	return &Handler{
		DB:       db,
		Messages: messages.NewStore(db),
		Comments: comments.NewStore(db),
		Users:    users.NewStore(db),
		Groups:   groups.NewStore(db),
		Bureaus:  bureaus.NewStore(db),
		Log:      logger,
		ErrLog:   errLog,
		FeedSize: feedSize,
	}
}
