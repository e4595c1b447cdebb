// internal/app/features/health/health.go
package health

import (
	"encoding/json"
	"net/http"

	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler reports process and database liveness.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.Check)
}

type status struct {
	Status string `json:"status"`
	Mongo  string `json:"mongo"`
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithPing(r.Context())
	defer cancel()

	st := status{Status: "ok", Mongo: "ok"}
	code := http.StatusOK
	if err := h.DB.Client().Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Warn("health check ping failed", zap.Error(err))
		st.Status = "degraded"
		st.Mongo = "unreachable"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(st)
}
