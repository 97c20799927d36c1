// Package handlers serves the JSON API over the analysis service.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"

	"github.com/go-playground/validator/v10"

	"jeopardy-stats-service/internal/app/analysis"
	"jeopardy-stats-service/internal/http/requestutil"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/poller"
	"jeopardy-stats-service/internal/query"
	"jeopardy-stats-service/internal/questions"
	"jeopardy-stats-service/internal/sandbox"
)

// Handler wires HTTP routes to the analysis service.
type Handler struct {
	svc      *analysis.Service
	logger   *slog.Logger
	validate *validator.Validate
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no poller runs.
func NewHandler(svc *analysis.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
		statusFn: statusFn,
	}
}

type analyzeRequest struct {
	Query       string `json:"query"`
	StartSeason int    `json:"startSeason" validate:"gte=0,lte=999"`
	EndSeason   int    `json:"endSeason" validate:"gte=0,lte=999"`
}

type askRequest struct {
	QuestionText string `json:"questionText"`
	Summary      string `json:"summary" validate:"max=500"`
	StartSeason  int    `json:"startSeason" validate:"gte=0,lte=999"`
	EndSeason    int    `json:"endSeason" validate:"gte=0,lte=999"`
	SaveQuestion bool   `json:"saveQuestion"`
}

type saveQuestionRequest struct {
	Text    string   `json:"text"`
	Summary string   `json:"summary" validate:"max=500"`
	Tags    []string `json:"tags" validate:"max=20,dive,required,max=40"`
}

type outcomeResponse struct {
	Success bool `json:"success"`
	analysis.Outcome
}

// ServeHTTP dispatches by path for callers that mount the handler directly.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/api/seasons":
		h.Seasons(w, r)
	case "/api/queries":
		h.Queries(w, r)
	case "/api/analyze":
		h.Analyze(w, r)
	case "/api/questions":
		h.Questions(w, r)
	case "/api/ask":
		h.Ask(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allow(w, r, nethttp.MethodGet) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. With a poller configured the
// service is ready once an ingest run has succeeded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allow(w, r, nethttp.MethodGet) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Seasons lists the regular seasons on disk.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allow(w, r, nethttp.MethodGet) {
		return
	}
	info, err := h.svc.Seasons()
	if err != nil {
		h.internalError(w, r, "list seasons failed", err)
		return
	}
	writeJSON(w, nethttp.StatusOK, struct {
		Success bool `json:"success"`
		analysis.SeasonsInfo
	}{true, info}, h.logger)
}

// Queries lists the canned queries.
func (h *Handler) Queries(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allow(w, r, nethttp.MethodGet) {
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"success": true, "queries": h.svc.Queries()}, h.logger)
}

// Analyze runs a canned query over a season range.
func (h *Handler) Analyze(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allow(w, r, nethttp.MethodPost) {
		return
	}
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	out, err := h.svc.Analyze(r.Context(), req.Query, req.StartSeason, req.EndSeason)
	if err != nil {
		var unknown *analysis.UnknownQueryError
		switch {
		case errors.Is(err, analysis.ErrMissingQuery):
			writeError(w, r, nethttp.StatusBadRequest, "Missing query parameter", h.logger)
		case errors.As(err, &unknown):
			writeErrorWith(w, r, nethttp.StatusBadRequest, "Unknown query type: "+unknown.ID,
				map[string]any{"suggestions": unknown.Suggestions}, h.logger)
		case errors.Is(err, analysis.ErrInvalidRange):
			writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		default:
			h.internalError(w, r, "analysis failed", err)
		}
		return
	}
	writeJSON(w, nethttp.StatusOK, outcomeResponse{Success: true, Outcome: out}, h.logger)
}

// Questions lists saved questions on GET and saves one on POST.
func (h *Handler) Questions(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		list, err := h.svc.Questions()
		if err != nil {
			h.questionError(w, r, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"success": true, "questions": list}, h.logger)
	case nethttp.MethodPost:
		var req saveQuestionRequest
		if !h.decode(w, r, &req) {
			return
		}
		q, existed, err := h.svc.SaveQuestion(req.Text, req.Summary, req.Tags)
		if err != nil {
			h.questionError(w, r, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"success": true, "question": q, "existed": existed}, h.logger)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// Ask synthesizes and runs an analysis program for a question.
func (h *Handler) Ask(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allow(w, r, nethttp.MethodPost) {
		return
	}
	var req askRequest
	if !h.decode(w, r, &req) {
		return
	}

	out, err := h.svc.Ask(r.Context(), analysis.AskRequest{
		Question:     req.QuestionText,
		Summary:      req.Summary,
		StartSeason:  req.StartSeason,
		EndSeason:    req.EndSeason,
		SaveQuestion: req.SaveQuestion,
	})
	if err != nil {
		h.askError(w, r, out, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, outcomeResponse{Success: true, Outcome: out}, h.logger)
}

func (h *Handler) askError(w nethttp.ResponseWriter, r *nethttp.Request, out analysis.Outcome, err error) {
	switch {
	case errors.Is(err, analysis.ErrMissingQuestion):
		writeError(w, r, nethttp.StatusBadRequest, "Question text is required", h.logger)
		return
	case errors.Is(err, analysis.ErrInvalidRange):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	case errors.Is(err, analysis.ErrNoSynthesizer), errors.Is(err, query.ErrExecutionDisabled):
		writeError(w, r, nethttp.StatusServiceUnavailable, err.Error(), h.logger)
		return
	case errors.Is(err, analysis.ErrSynthesis):
		logging.Warn(loggerFromContext(r, h.logger), "ask synthesis failed", "error", err)
		writeError(w, r, nethttp.StatusBadGateway, err.Error(), h.logger)
		return
	case errors.Is(err, context.Canceled):
		writeError(w, r, nethttp.StatusServiceUnavailable, "request canceled", h.logger)
		return
	}

	if execErr, ok := sandbox.AsExecError(err); ok {
		status := nethttp.StatusUnprocessableEntity
		if execErr.Kind == sandbox.KindTimeout {
			status = nethttp.StatusGatewayTimeout
		}
		writeErrorWith(w, r, status, "Analysis execution failed: "+execErr.Error(), map[string]any{
			"kind": execErr.Kind,
			"code": out.Code,
		}, h.logger)
		return
	}
	h.internalError(w, r, "ask failed", err)
}

func (h *Handler) questionError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case errors.Is(err, analysis.ErrMissingQuestion), errors.Is(err, questions.ErrEmptyText):
		writeError(w, r, nethttp.StatusBadRequest, "Question text is required", h.logger)
	case errors.Is(err, analysis.ErrNoQuestionStore):
		writeError(w, r, nethttp.StatusServiceUnavailable, err.Error(), h.logger)
	default:
		h.internalError(w, r, "question store failed", err)
	}
}

func (h *Handler) internalError(w nethttp.ResponseWriter, r *nethttp.Request, msg string, err error) {
	logging.Error(loggerFromContext(r, h.logger), msg, err)
	writeError(w, r, nethttp.StatusInternalServerError, err.Error(), h.logger)
}

func (h *Handler) allow(w nethttp.ResponseWriter, r *nethttp.Request, method string) bool {
	if r.Method == method {
		return true
	}
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	return false
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (h *Handler) decode(w nethttp.ResponseWriter, r *nethttp.Request, dst any) bool {
	if err := requestutil.DecodeJSON(w, r, dst); err != nil {
		status := nethttp.StatusBadRequest
		if errors.Is(err, requestutil.ErrBodyTooLarge) {
			status = nethttp.StatusRequestEntityTooLarge
		}
		writeError(w, r, status, err.Error(), h.logger)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, validationMessage(err), h.logger)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() == "" {
		return fmt.Sprintf("invalid %s: failed %s", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("invalid %s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
}
