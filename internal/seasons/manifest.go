package seasons

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest records what the last ingest wrote.
type Manifest struct {
	Version     int                   `json:"version"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Buckets     map[string]BucketMeta `json:"buckets"`
}

// BucketMeta describes one bucket file.
type BucketMeta struct {
	Games  int `json:"games"`
	Season int `json:"season,omitempty"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: 1,
		Buckets: map[string]BucketMeta{},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(ManifestPath(basePath))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Buckets == nil {
		m.Buckets = map[string]BucketMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
