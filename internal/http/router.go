package http

import (
	nethttp "net/http"

	"jeopardy-stats-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/api/seasons", handler.Seasons)
	mux.HandleFunc("/api/queries", handler.Queries)
	mux.HandleFunc("/api/analyze", handler.Analyze)
	mux.HandleFunc("/api/questions", handler.Questions)
	mux.HandleFunc("/api/ask", handler.Ask)
	return mux
}
