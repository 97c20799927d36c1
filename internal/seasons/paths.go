package seasons

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

const manifestName = "manifest.json"

var seasonName = regexp.MustCompile(`^season-(\d+)$`)

// SeasonName returns the bucket name for a regular season.
func SeasonName(season int) string {
	return fmt.Sprintf("season-%02d", season)
}

// ParseSeasonName extracts the season number from a bucket name.
func ParseSeasonName(name string) (int, bool) {
	m := seasonName.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// BucketPath builds the path of a bucket file. Bucket files carry no extension.
func BucketPath(basePath, bucket string) string {
	return filepath.Join(basePath, bucket)
}

// SeasonPath builds the path of a regular season file.
func SeasonPath(basePath string, season int) string {
	return BucketPath(basePath, SeasonName(season))
}

// ManifestPath builds the manifest location under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestName)
}
