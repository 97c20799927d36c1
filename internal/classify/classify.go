// Package classify tags normalized games as regular season play or a
// special event and groups them into storage buckets.
package classify

import (
	"cmp"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
)

const seasonMarker = "First game of Season"

var (
	seasonPattern  = regexp.MustCompile(`First game of Season (\d+)`)
	seniorsPattern = regexp.MustCompile(`Senior[s]? Tournament`)
)

type rule struct {
	match func(string) bool
	class games.Classification
}

func contains(fragment string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, fragment) }
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{contains("Tournament of Champions"), games.ClassTournamentOfChampions},
	{contains("All-Star Games"), games.ClassAllStarGames},
	{contains("Back to School Week"), games.ClassBackToSchoolWeek},
	{contains("Battle of the Decades"), games.ClassBattleOfTheDecades},
	{contains("Celebrity Jeopardy"), games.ClassCelebrityJeopardy},
	{contains("Champions Wildcard"), games.ClassChampionsWildcard},
	{contains("College Championship"), games.ClassCollegeChampionship},
	{contains("High School Reunion Tournament"), games.ClassHighSchoolReunionTournament},
	{contains("Jeopardy!: The Greatest of All Time"), games.ClassJeopardyGOAT},
	{contains("Jeopardy! Invitational Tournament"), games.ClassJeopardyInvitationalTournament},
	{contains("Jeopardy! Masters"), games.ClassJeopardyMasters},
	{contains("Kids Week"), games.ClassKidsWeek},
	{contains("Power Players Week"), games.ClassPowerPlayersWeek},
	{contains("Professors Tournament"), games.ClassProfessorsTournament},
	{contains("Second Chance competition"), games.ClassSecondChanceCompetition},
	{seniorsPattern.MatchString, games.ClassSeniorsTournament},
	{contains("Teachers Tournament"), games.ClassTeachersTournament},
	{contains("Teen Tournament"), games.ClassTeenTournament},
}

// Tag maps game comments to a classification.
func Tag(comments string) games.Classification {
	s := norm.NFC.String(comments)
	for _, r := range rules {
		if r.match(s) {
			return r.class
		}
	}
	return games.ClassRegularGame
}

// SeasonFromComments extracts N from "First game of Season N".
func SeasonFromComments(comments string) (int, bool) {
	m := seasonPattern.FindStringSubmatch(norm.NFC.String(comments))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SeasonBucket names the bucket for a regular season.
func SeasonBucket(season int) string {
	return fmt.Sprintf("season-%02d", season)
}

// Bucket names the storage bucket for a classified game.
func Bucket(class games.Classification, season int) string {
	if class == games.ClassRegularGame || class == "" {
		return SeasonBucket(season)
	}
	return string(class)
}

// Classifier tags games in broadcast order, tracking the current season
// from "First game of Season N" markers.
type Classifier struct {
	season int
	logger *slog.Logger
}

// NewClassifier starts tracking at season. Values below 1 start at 1.
func NewClassifier(season int, logger *slog.Logger) *Classifier {
	if season < 1 {
		season = 1
	}
	return &Classifier{season: season, logger: logger}
}

// Season reports the season the next regular game will be filed under.
func (c *Classifier) Season() int {
	return c.season
}

// Classify returns a tagged copy of g and its bucket name.
func (c *Classifier) Classify(g games.Game) (games.Game, string) {
	if strings.Contains(g.Comments, seasonMarker) {
		if n, ok := SeasonFromComments(g.Comments); ok {
			c.season = n
		} else {
			logging.Warn(c.logger, "season marker without number",
				slog.Int(logging.FieldGameID, g.GameID),
				slog.String(logging.FieldDate, g.Date),
			)
		}
	}
	g.Classification = Tag(g.Comments)
	return g, Bucket(g.Classification, c.season)
}

// Group classifies gs in air-date order and returns the games per bucket.
// Ties on date keep game id order.
func (c *Classifier) Group(gs []games.Game) map[string][]games.Game {
	ordered := slices.Clone(gs)
	slices.SortStableFunc(ordered, func(a, b games.Game) int {
		if d := strings.Compare(a.Date, b.Date); d != 0 {
			return d
		}
		return cmp.Compare(a.GameID, b.GameID)
	})

	out := make(map[string][]games.Game)
	for _, g := range ordered {
		tagged, bucket := c.Classify(g)
		out[bucket] = append(out[bucket], tagged)
	}
	return out
}

// BucketNames returns the bucket names in lexical order.
func BucketNames(buckets map[string][]games.Game) []string {
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
