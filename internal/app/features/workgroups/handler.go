// internal/app/features/workgroups/handler.go
package workgroups

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

// Handler owns the workgroup pages: the group directory, per-group
// dashboard, member roster, and group news.
type Handler struct {
	DB       *mongo.Database
	Groups   *groups.Store
	Bureaus  *bureaus.Store
	Users    *users.Store
	Messages *messages.Store
	Comments *comments.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Groups:   groups.NewStore(db),
		Bureaus:  bureaus.NewStore(db),
		Users:    users.NewStore(db),
		Messages: messages.NewStore(db),
		Comments: comments.NewStore(db),
		Log:      logger,
		ErrLog:   errLog,
	}
}
