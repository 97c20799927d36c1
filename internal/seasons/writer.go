package seasons

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
)

// Writer persists classified buckets and the manifest.
type Writer struct {
	basePath string
	logger   *slog.Logger
	now      func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string, logger *slog.Logger) *Writer {
	return &Writer{
		basePath: basePath,
		logger:   logger,
		now:      time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteBuckets writes every bucket as a JSON array and records the counts
// in the manifest. Buckets already on disk with identical content are skipped.
func (w *Writer) WriteBuckets(buckets map[string][]games.Game) error {
	if w == nil {
		return errors.New("season writer not configured")
	}
	if err := os.MkdirAll(w.basePath, 0o755); err != nil {
		return err
	}

	m, _ := ReadManifest(w.basePath)
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if name == "" || name == manifestName {
			return fmt.Errorf("invalid bucket name %q", name)
		}
		items := buckets[name]
		if items == nil {
			items = []games.Game{}
		}
		written, err := w.writeBucket(name, items)
		if err != nil {
			return fmt.Errorf("write bucket %s: %w", name, err)
		}
		meta := BucketMeta{Games: len(items)}
		if n, ok := ParseSeasonName(name); ok {
			meta.Season = n
		}
		m.Buckets[name] = meta
		logging.Info(w.logger, "bucket written",
			slog.String(logging.FieldBucket, name),
			slog.Int(logging.FieldCount, len(items)),
			slog.Bool("changed", written),
		)
	}
	return writeManifest(w.basePath, m, w.now())
}

func (w *Writer) writeBucket(name string, items []games.Game) (bool, error) {
	target := BucketPath(w.basePath, name)
	data, err := json.Marshal(items)
	if err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := writeAtomic(target, data); err != nil {
		return false, err
	}
	return true, nil
}
