package games

// RawGame is a scraped game record before normalization. Clue values and
// scores are currency strings and Final Jeopardy responses arrive as
// interleaved response and wager rows.
type RawGame struct {
	GameID         int            `json:"gameId"`
	ShowNumber     Token          `json:"showNumber"`
	Title          string         `json:"title"`
	Date           string         `json:"date"`
	Comments       string         `json:"comments"`
	Contestants    []string       `json:"contestants"`
	Rounds         RawRounds      `json:"rounds"`
	FinalScores    []RawScore     `json:"finalScores"`
	CoryatScores   []RawScore     `json:"coryatScores"`
	Classification Classification `json:"classification,omitempty"`
}

type RawRounds struct {
	Jeopardy       *RawRound      `json:"jeopardy"`
	DoubleJeopardy *RawRound      `json:"doubleJeopardy"`
	FinalJeopardy  *RawFinalRound `json:"finalJeopardy"`
}

type RawRound struct {
	Categories       []string   `json:"categories"`
	Clues            []RawClue  `json:"clues"`
	FirstBreakScores []RawScore `json:"firstBreakScores"`
	EndOfRoundScores []RawScore `json:"endOfRoundScores"`
}

type RawClue struct {
	Category             string   `json:"category"`
	Value                Token    `json:"value"`
	Clue                 string   `json:"clue"`
	Answer               string   `json:"answer"`
	IsDailyDouble        bool     `json:"isDailyDouble"`
	OrderNumber          *int     `json:"orderNumber"`
	CorrectContestants   []string `json:"correctContestants"`
	IncorrectContestants []string `json:"incorrectContestants"`
	WasTripleStumper     bool     `json:"wasTripleStumper"`
}

type RawFinalRound struct {
	Category  string             `json:"category"`
	Clue      string             `json:"clue"`
	Answer    string             `json:"answer"`
	Responses []RawFinalResponse `json:"responses"`
}

// RawFinalResponse is one scraped Final Jeopardy row. Wager rows carry the
// amount in Response.
type RawFinalResponse struct {
	Contestant  string `json:"contestant"`
	Response    string `json:"response"`
	IsCorrect   bool   `json:"isCorrect"`
	IsIncorrect bool   `json:"isIncorrect"`
}

type RawScore struct {
	Player string `json:"player"`
	Score  Token  `json:"score"`
}
