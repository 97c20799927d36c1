package games

import "encoding/json"

// Classification tags a game as a regular season game or a special event.
type Classification string

const (
	ClassRegularGame                    Classification = "regularGame"
	ClassTournamentOfChampions          Classification = "tournamentOfChampions"
	ClassAllStarGames                   Classification = "allStarGames"
	ClassBackToSchoolWeek               Classification = "backToSchoolWeek"
	ClassBattleOfTheDecades             Classification = "battleOfTheDecades"
	ClassCelebrityJeopardy              Classification = "celebrityJeopardy"
	ClassChampionsWildcard              Classification = "championsWildcard"
	ClassCollegeChampionship            Classification = "collegeChampionship"
	ClassHighSchoolReunionTournament    Classification = "highSchoolReunionTournament"
	ClassJeopardyGOAT                   Classification = "jeopardyGOAT"
	ClassJeopardyInvitationalTournament Classification = "jeopardyInvitationalTournament"
	ClassJeopardyMasters                Classification = "jeopardyMasters"
	ClassKidsWeek                       Classification = "kidsWeek"
	ClassPowerPlayersWeek               Classification = "powerPlayersWeek"
	ClassProfessorsTournament           Classification = "professorsTournament"
	ClassSecondChanceCompetition        Classification = "secondChanceCompetition"
	ClassSeniorsTournament              Classification = "seniorsTournament"
	ClassTeachersTournament             Classification = "teachersTournament"
	ClassTeenTournament                 Classification = "teenTournament"
)

// ScoreEntry is one player's score at a checkpoint.
type ScoreEntry struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// Clue is a single normalized clue with the score state after it resolved.
type Clue struct {
	Category             string       `json:"category"`
	Value                int          `json:"value"`
	Clue                 string       `json:"clue"`
	Answer               string       `json:"answer"`
	IsDailyDouble        bool         `json:"isDailyDouble"`
	OrderNumber          *int         `json:"orderNumber"`
	CorrectContestants   []string     `json:"correctContestants"`
	IncorrectContestants []string     `json:"incorrectContestants"`
	WasTripleStumper     bool         `json:"wasTripleStumper"`
	RunningScores        []ScoreEntry `json:"runningScores"`
}

// Round is a Jeopardy or Double Jeopardy round.
type Round struct {
	Categories       []string     `json:"categories"`
	Clues            []Clue       `json:"clues"`
	FirstBreakScores []ScoreEntry `json:"firstBreakScores,omitempty"`
	EndOfRoundScores []ScoreEntry `json:"endOfRoundScores"`
}

// FinalResponse is a paired Final Jeopardy response. Value and FinalScore
// are nil when the wager could not be recovered.
type FinalResponse struct {
	Contestant  string `json:"contestant"`
	Response    string `json:"response"`
	IsCorrect   bool   `json:"isCorrect"`
	IsIncorrect bool   `json:"isIncorrect"`
	Value       *int   `json:"value,omitempty"`
	FinalScore  *int   `json:"finalScore,omitempty"`
}

// FinalRound holds the Final Jeopardy clue and paired responses.
type FinalRound struct {
	Category  string          `json:"category"`
	Clue      string          `json:"clue"`
	Answer    string          `json:"answer"`
	Responses []FinalResponse `json:"responses"`
}

// Rounds groups the three rounds of a game. Missing rounds are nil.
type Rounds struct {
	Jeopardy       *Round      `json:"jeopardy,omitempty"`
	DoubleJeopardy *Round      `json:"doubleJeopardy,omitempty"`
	FinalJeopardy  *FinalRound `json:"finalJeopardy,omitempty"`
}

// Game is the canonical normalized game record.
type Game struct {
	GameID         int            `json:"gameId"`
	ShowNumber     string         `json:"showNumber"`
	Title          string         `json:"title"`
	Date           string         `json:"date"`
	Comments       string         `json:"comments"`
	Contestants    []string       `json:"contestants"`
	Rounds         Rounds         `json:"rounds"`
	FinalScores    []ScoreEntry   `json:"finalScores"`
	CoryatScores   []ScoreEntry   `json:"coryatScores,omitempty"`
	Classification Classification `json:"classification,omitempty"`
}

// UnmarshalJSON accepts scores stored as currency strings.
func (s *ScoreEntry) UnmarshalJSON(data []byte) error {
	var aux struct {
		Player string `json:"player"`
		Score  Token  `json:"score"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = ScoreEntry{Player: aux.Player, Score: aux.Score.Int()}
	return nil
}

// UnmarshalJSON accepts clue values stored as currency strings.
func (c *Clue) UnmarshalJSON(data []byte) error {
	type plain Clue
	var aux struct {
		plain
		Value Token `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Clue(aux.plain)
	c.Value = aux.Value.Int()
	return nil
}

// UnmarshalJSON accepts wagers and final scores stored as strings.
func (r *FinalResponse) UnmarshalJSON(data []byte) error {
	type plain FinalResponse
	var aux struct {
		plain
		Value      *Token `json:"value"`
		FinalScore *Token `json:"finalScore"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = FinalResponse(aux.plain)
	r.Value = aux.Value.IntPtr()
	r.FinalScore = aux.FinalScore.IntPtr()
	return nil
}

// ShowNumber values are scraped as strings but older files store numbers.
func (g *Game) UnmarshalJSON(data []byte) error {
	type plain Game
	var aux struct {
		plain
		ShowNumber Token `json:"showNumber"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*g = Game(aux.plain)
	g.ShowNumber = aux.ShowNumber.String()
	return nil
}
