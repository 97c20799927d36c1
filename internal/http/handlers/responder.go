package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"jeopardy-stats-service/internal/http/middleware"
	"jeopardy-stats-service/internal/http/requestutil"
	"jeopardy-stats-service/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorWith(w, r, status, message, nil, logger)
}

// writeErrorWith adds extra fields next to the error message.
func writeErrorWith(w http.ResponseWriter, r *http.Request, status int, message string, extra map[string]any, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]any{"success": false, "error": message}
	for k, v := range extra {
		body[k] = v
	}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
