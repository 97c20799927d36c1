// Package analysis answers canned and free-form questions over a season range.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/query"
	"jeopardy-stats-service/internal/questions"
	"jeopardy-stats-service/internal/stats"
	"jeopardy-stats-service/internal/synth"
)

const (
	DefaultStartSeason = 1
	DefaultEndSeason   = 99
	MaxSeason          = 999

	NoGamesWarning = "No games found for the specified season range"
)

var (
	ErrMissingQuery    = errors.New("missing query parameter")
	ErrMissingQuestion = errors.New("question text is required")
	ErrInvalidRange    = errors.New("invalid season range")
	ErrSynthesis       = errors.New("failed to generate analysis code")
	ErrNoSynthesizer   = errors.New("code synthesis is not configured")
	ErrNoQuestionStore = errors.New("question store is not configured")
)

// UnknownQueryError reports a query id missing from the registry.
type UnknownQueryError struct {
	ID          string
	Suggestions []string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query type: %s", e.ID)
}

// SeasonSource loads games for an inclusive season range.
type SeasonSource interface {
	Range(ctx context.Context, start, end int) ([]games.Game, error)
}

// SeasonLister lists the seasons available on disk.
type SeasonLister interface {
	Seasons() ([]int, error)
}

// QuestionStore persists saved questions.
type QuestionStore interface {
	All() ([]questions.Question, error)
	Save(text, summary string, tags []string) (questions.Question, bool, error)
}

// SeasonRange is an inclusive range of season numbers.
type SeasonRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ResolveRange applies defaults to unset bounds and rejects bounds
// outside 1..MaxSeason.
func ResolveRange(start, end int) (SeasonRange, error) {
	if start == 0 {
		start = DefaultStartSeason
	}
	if end == 0 {
		end = DefaultEndSeason
	}
	if start < 1 || end < 1 || start > MaxSeason || end > MaxSeason {
		return SeasonRange{}, fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}
	return SeasonRange{Start: start, End: end}, nil
}

// Outcome is the response to an analyze or ask call. Result is nil when
// the range held no games.
type Outcome struct {
	SeasonRange   SeasonRange         `json:"seasonRange"`
	GamesLoaded   int                 `json:"gamesLoaded"`
	Result        *stats.Result       `json:"result"`
	Warning       string              `json:"warning,omitempty"`
	Code          string              `json:"code,omitempty"`
	Usage         *synth.Usage        `json:"usage,omitempty"`
	SavedQuestion *questions.Question `json:"savedQuestion,omitempty"`
}

// AskRequest is a free-form question.
type AskRequest struct {
	Question     string
	Summary      string
	StartSeason  int
	EndSeason    int
	SaveQuestion bool
}

// SeasonsInfo lists the available seasons. Min and Max are nil when none exist.
type SeasonsInfo struct {
	Seasons []int `json:"seasons"`
	Min     *int  `json:"min"`
	Max     *int  `json:"max"`
}

// Service coordinates season loading, query dispatch and code synthesis.
type Service struct {
	source      SeasonSource
	lister      SeasonLister
	engine      *query.Engine
	synthesizer synth.Synthesizer
	questions   QuestionStore
	logger      *slog.Logger
}

// NewService wires the analysis dependencies. synthesizer and store may be nil.
func NewService(source SeasonSource, lister SeasonLister, engine *query.Engine, synthesizer synth.Synthesizer, store QuestionStore, logger *slog.Logger) *Service {
	return &Service{
		source:      source,
		lister:      lister,
		engine:      engine,
		synthesizer: synthesizer,
		questions:   store,
		logger:      logger,
	}
}

// Queries lists the canned queries.
func (s *Service) Queries() []query.Info {
	return s.engine.Queries()
}

// Seasons lists the regular seasons on disk.
func (s *Service) Seasons() (SeasonsInfo, error) {
	list, err := s.lister.Seasons()
	if err != nil {
		return SeasonsInfo{}, err
	}
	info := SeasonsInfo{Seasons: list}
	if len(list) > 0 {
		lo, hi := slices.Min(list), slices.Max(list)
		info.Min, info.Max = &lo, &hi
	}
	return info, nil
}

// Analyze runs a canned query over a season range. Unknown ids fail with
// *UnknownQueryError before any season is loaded.
func (s *Service) Analyze(ctx context.Context, queryID string, startSeason, endSeason int) (Outcome, error) {
	queryID = strings.TrimSpace(queryID)
	if queryID == "" {
		return Outcome{}, ErrMissingQuery
	}
	if _, ok := s.engine.Lookup(queryID); !ok {
		return Outcome{}, &UnknownQueryError{ID: queryID, Suggestions: s.engine.Suggest(queryID)}
	}
	rng, err := ResolveRange(startSeason, endSeason)
	if err != nil {
		return Outcome{}, err
	}

	gs, err := s.load(ctx, rng)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{SeasonRange: rng, GamesLoaded: len(gs)}
	if len(gs) == 0 {
		out.Warning = NoGamesWarning
		return out, nil
	}

	res, _ := s.engine.Run(queryID, gs)
	out.Result = &res
	return out, nil
}

// Ask synthesizes an analysis program for a question, runs it over the
// season range and optionally saves the question. When execution fails the
// returned Outcome still carries the generated code.
func (s *Service) Ask(ctx context.Context, req AskRequest) (Outcome, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Outcome{}, ErrMissingQuestion
	}
	if s.synthesizer == nil {
		return Outcome{}, ErrNoSynthesizer
	}
	rng, err := ResolveRange(req.StartSeason, req.EndSeason)
	if err != nil {
		return Outcome{}, err
	}
	logger := logging.FromContext(ctx, s.logger)

	generated, err := s.synthesizer.Generate(ctx, question)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	usage := generated.Usage
	out := Outcome{SeasonRange: rng, Code: generated.Code, Usage: &usage}

	gs, err := s.load(ctx, rng)
	if err != nil {
		return out, err
	}
	out.GamesLoaded = len(gs)
	if len(gs) == 0 {
		out.Warning = NoGamesWarning
		return out, nil
	}

	res, err := s.engine.Execute(ctx, generated.Code, gs)
	if err != nil {
		return out, err
	}
	out.Result = &res

	if req.SaveQuestion {
		if s.questions == nil {
			logging.Warn(logger, "question not saved", slog.String("reason", ErrNoQuestionStore.Error()))
			return out, nil
		}
		saved, _, err := s.questions.Save(question, req.Summary, nil)
		if err != nil {
			logging.Error(logger, "question save failed", err)
			return out, nil
		}
		out.SavedQuestion = &saved
	}
	return out, nil
}

// Questions lists saved questions, most recently used first.
func (s *Service) Questions() ([]questions.Question, error) {
	if s.questions == nil {
		return nil, ErrNoQuestionStore
	}
	return s.questions.All()
}

// SaveQuestion stores a question or touches the existing similar one.
func (s *Service) SaveQuestion(text, summary string, tags []string) (questions.Question, bool, error) {
	if strings.TrimSpace(text) == "" {
		return questions.Question{}, false, ErrMissingQuestion
	}
	if s.questions == nil {
		return questions.Question{}, false, ErrNoQuestionStore
	}
	return s.questions.Save(text, summary, tags)
}

func (s *Service) load(ctx context.Context, rng SeasonRange) ([]games.Game, error) {
	gs, err := s.source.Range(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("load seasons %d-%d: %w", rng.Start, rng.End, err)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "seasons loaded",
		slog.Int("start_season", rng.Start),
		slog.Int("end_season", rng.End),
		slog.Int(logging.FieldCount, len(gs)),
	)
	return gs, nil
}
