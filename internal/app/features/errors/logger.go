// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// ErrorLogger tags each server error with an incident ID that appears
// both in the log and on the rendered page, so a user report can be
// matched to the log line.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

type serverErrorData struct {
	viewdata.BaseVM
	Message    string
	IncidentID string
}

// ServerError logs the error and renders the 500 page.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	incident := uuid.NewString()
	e.log.Error(msg,
		zap.Error(err),
		zap.String("incident_id", incident),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	data := serverErrorData{
		BaseVM:     viewdata.NewBaseVM(r, "Something went wrong", "/"),
		Message:    "An unexpected error occurred. Please try again.",
		IncidentID: incident,
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "errors/server_error", data)
}
