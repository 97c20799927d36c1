// Package questions persists saved free-form questions in a JSON file.
package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"jeopardy-stats-service/internal/logging"
)

const idPrefix = "q_"

var (
	ErrNotFound  = errors.New("question not found")
	ErrEmptyText = errors.New("question text is required")
)

// Question is a saved question.
type Question struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Summary    string    `json:"summary"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsedAt time.Time `json:"lastUsedAt"`
}

func (q Question) recency() time.Time {
	if q.LastUsedAt.IsZero() {
		return q.CreatedAt
	}
	return q.LastUsedAt
}

type document struct {
	Questions []Question `json:"questions"`
}

// FileStore keeps questions in one JSON document. Every operation reads
// the file and writes it back atomically under a single mutex.
type FileStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu sync.Mutex
}

// NewFileStore opens path, creating an empty document when it is missing.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return idPrefix + uuid.NewString() },
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := s.save(document{Questions: []Question{}}); err != nil {
			return nil, err
		}
		logging.Info(logger, "question store created", slog.String(logging.FieldFile, path))
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

// All returns every question, most recently used first.
func (s *FileStore) All() ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := doc.Questions
	slices.SortStableFunc(out, func(a, b Question) int {
		return b.recency().Compare(a.recency())
	})
	return out, nil
}

// Get returns one question by id.
func (s *FileStore) Get(id string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return Question{}, err
	}
	if i := indexOf(doc.Questions, id); i >= 0 {
		return doc.Questions[i], nil
	}
	return Question{}, ErrNotFound
}

// Create stores a new question.
func (s *FileStore) Create(text, summary string, tags []string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(text, summary, tags)
}

// Touch marks a question as used now.
func (s *FileStore) Touch(id string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return Question{}, err
	}
	i := indexOf(doc.Questions, id)
	if i < 0 {
		return Question{}, ErrNotFound
	}
	doc.Questions[i].LastUsedAt = s.now().UTC()
	if err := s.save(doc); err != nil {
		return Question{}, err
	}
	return doc.Questions[i], nil
}

// Delete removes a question.
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(doc.Questions, id)
	if i < 0 {
		return ErrNotFound
	}
	doc.Questions = slices.Delete(doc.Questions, i, i+1)
	return s.save(doc)
}

// FindSimilar returns the question whose text matches after trimming and
// case folding.
func (s *FileStore) FindSimilar(text string) (Question, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return Question{}, false, err
	}
	if i := similarIndex(doc.Questions, text); i >= 0 {
		return doc.Questions[i], true, nil
	}
	return Question{}, false, nil
}

// Save returns the similar question, touched, or creates a new one.
func (s *FileStore) Save(text, summary string, tags []string) (Question, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return Question{}, false, err
	}
	if i := similarIndex(doc.Questions, text); i >= 0 {
		doc.Questions[i].LastUsedAt = s.now().UTC()
		if err := s.save(doc); err != nil {
			return Question{}, false, err
		}
		return doc.Questions[i], true, nil
	}
	q, err := s.create(text, summary, tags)
	return q, false, err
}

func (s *FileStore) create(text, summary string, tags []string) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, ErrEmptyText
	}
	doc, err := s.load()
	if err != nil {
		return Question{}, err
	}
	if tags == nil {
		tags = []string{}
	}
	now := s.now().UTC()
	q := Question{
		ID:         s.newID(),
		Text:       text,
		Summary:    summary,
		Tags:       tags,
		CreatedAt:  now,
		LastUsedAt: now,
	}
	doc.Questions = append(doc.Questions, q)
	if err := s.save(doc); err != nil {
		return Question{}, err
	}
	logging.Info(s.logger, "question saved", slog.String("question_id", q.ID))
	return q, nil
}

func (s *FileStore) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document{Questions: []Question{}}, nil
		}
		return document{}, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc.Questions == nil {
		doc.Questions = []Question{}
	}
	return doc, nil
}

func (s *FileStore) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func indexOf(qs []Question, id string) int {
	return slices.IndexFunc(qs, func(q Question) bool { return q.ID == id })
}

func similarIndex(qs []Question, text string) int {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(text))
	if want == "" {
		return -1
	}
	return slices.IndexFunc(qs, func(q Question) bool {
		return fold.String(strings.TrimSpace(q.Text)) == want
	})
}
