package domain

// TeamID identifies a team within a round. Valid ids run from 1 to the
// round's team count; 0 means "no team".
type TeamID int

// NoTeam is the zero TeamID used when an outcome credits nobody.
const NoTeam TeamID = 0

// MinTeams and MaxTeams bound the number of teams in a round.
const (
	MinTeams = 2
	MaxTeams = 6
)

// teamColors is the fixed display palette, indexed by TeamID-1.
var teamColors = [MaxTeams]string{
	"#2196f3", "#f44336", "#4caf50", "#ff9800", "#9c27b0", "#795548",
}

// TeamColor returns the display color for a team, or an empty string for
// ids outside the palette.
func TeamColor(id TeamID) string {
	if id < 1 || int(id) > len(teamColors) {
		return ""
	}
	return teamColors[id-1]
}

// Question is a single trivia question. Immutable once loaded.
type Question struct {
	Prompt       string   `json:"question"`
	Answer       string   `json:"answer"`
	WrongAnswers []string `json:"wrongAnswers"`
	FunFact      string   `json:"funFact"`
}

// QuestionSet is the payload of one generation request, keyed by the
// parameters it was generated with.
type QuestionSet struct {
	Theme      string     `json:"theme"`
	Language   string     `json:"language"`
	Difficulty string     `json:"difficulty"`
	Questions  []Question `json:"questions"`
}

// QuestionOutcome is the result of one played question.
type QuestionOutcome struct {
	TeamID        TeamID `json:"teamId"`
	Correct       bool   `json:"correct"`
	PointsAwarded int    `json:"pointsAwarded"`
	Explanation   string `json:"explanation,omitempty"`
}

// Verdict is the structured result of answer verification.
type Verdict struct {
	IsCorrect   bool    `json:"isCorrect"`
	Explanation string  `json:"explanation"`
	Similarity  float64 `json:"similarity"` // in [0,1]
}

// Profile describes the logged-in user as reported by the identity service.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
