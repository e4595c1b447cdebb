// internal/app/features/directory/handler.go
package directory

import (
	uierrors "github.com/quorumhq/quorum/internal/app/features/errors"
	"github.com/quorumhq/quorum/internal/app/store/users"
	"github.com/quorumhq/quorum/internal/app/system/rooms"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the member directory search.
type Handler struct {
	DB        *mongo.Database
	Users     *users.Store
	Refresher *rooms.Refresher
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger

	// RoomsEnabled controls whether room data is searchable and shown.
	RoomsEnabled bool
}

func NewHandler(db *mongo.Database, refresher *rooms.Refresher, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Users:        users.NewStore(db),
		Refresher:    refresher,
		Log:          logger,
		ErrLog:       errLog,
		RoomsEnabled: refresher != nil,
	}
}
