// Package seasons reads and writes classified game buckets: one JSON array
// per regular season ("season-NN") and one per special event.
package seasons

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
)

// ErrNotConfigured is returned by a nil store.
var ErrNotConfigured = errors.New("season store not configured")

// Store loads season data.
type Store interface {
	LoadSeason(season int) ([]games.Game, error)
	Seasons() ([]int, error)
}

// FSStore loads buckets from the filesystem.
type FSStore struct {
	basePath string
	logger   *slog.Logger
}

// NewFSStore constructs an FS-backed store rooted at basePath.
func NewFSStore(basePath string, logger *slog.Logger) *FSStore {
	return &FSStore{basePath: basePath, logger: logger}
}

// BasePath exposes the store root.
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// LoadSeason reads one regular season. A missing file is an empty season;
// an undecodable file is logged and treated as empty.
func (s *FSStore) LoadSeason(season int) ([]games.Game, error) {
	return s.LoadBucket(SeasonName(season))
}

// LoadBucket reads any bucket by name with the same rules as LoadSeason.
func (s *FSStore) LoadBucket(name string) ([]games.Game, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	var out []games.Game
	err := decodeFile(BucketPath(s.basePath, name), &out)
	switch {
	case err == nil:
		if out == nil {
			out = []games.Game{}
		}
		return out, nil
	case errors.Is(err, fs.ErrNotExist):
		return []games.Game{}, nil
	case isDecodeError(err):
		logging.Error(s.logger, "bucket decode failed", err, slog.String(logging.FieldBucket, name))
		return []games.Game{}, nil
	default:
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
}

// Seasons lists the regular seasons on disk in ascending order.
func (s *FSStore) Seasons() ([]int, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []int{}, nil
		}
		return nil, err
	}
	out := []int{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n, ok := ParseSeasonName(e.Name()); ok {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}
