// Package response writes JSON bodies and error envelopes for the API
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Message is the body of endpoints that only confirm an action
type Message struct {
	Message string `json:"message"`
}

// JSON writes data with the given status
func JSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// NoContent writes a bare 204
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err to w. An upstream failure is relayed with its original status and body;
// anything else becomes an AppError envelope.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var upstream *outbound.UpstreamError
	if errors.As(err, &upstream) {
		contentType := upstream.ContentType
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(upstream.StatusCode)
		if _, werr := w.Write(upstream.Body); werr != nil {
			logger.Error("Failed to relay upstream body", zap.Error(werr))
		}
		return
	}

	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Wrap(err, "Internal server error")
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}

	JSON(w, logger, status, apperrors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())))
}
