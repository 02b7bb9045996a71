package app

import (
	"sort"

	"squarebuzz/internal/domain"
	"squarebuzz/internal/game"
)

// Update events pushed to subscribers. EventRevealed doubles as the cue
// notification for timer-expiry sound and visuals on the host screen.
const (
	EventState    = "state"
	EventTick     = "tick"
	EventRevealed = "revealed"
	EventGameOver = "gameOver"
)

// Update pairs an event with a full game snapshot.
type Update struct {
	Event string   `json:"event"`
	View  GameView `json:"view"`
}

// GameView is a snapshot of everything the shared screen renders.
type GameView struct {
	Phase          string                   `json:"phase"` // setup | playing | gameOver
	QuestionNumber int                      `json:"questionNumber,omitempty"`
	TotalQuestions int                      `json:"totalQuestions,omitempty"`
	TurnTeam       domain.TeamID            `json:"turnTeam,omitempty"`
	State          string                   `json:"state,omitempty"`
	Mode           string                   `json:"mode,omitempty"`
	Prompt         string                   `json:"prompt,omitempty"`
	Options        []string                 `json:"options,omitempty"`
	Remaining      int                      `json:"remaining,omitempty"`
	ReadyTeams     []domain.TeamID          `json:"readyTeams,omitempty"`
	Claimant       domain.TeamID            `json:"claimant,omitempty"`
	Scores         map[domain.TeamID]int    `json:"scores,omitempty"`
	Colors         map[domain.TeamID]string `json:"colors,omitempty"`
	Answer         string                   `json:"answer,omitempty"`
	FunFact        string                   `json:"funFact,omitempty"`
	Outcome        *domain.QuestionOutcome  `json:"outcome,omitempty"`
	Winners        []domain.TeamID          `json:"winners,omitempty"`
}

// Subscribe returns a channel of game updates plus a cancel function the
// caller must invoke to avoid leaks. The first update is the current state.
func (s *GameService) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := Update{Event: EventState, View: s.snapshotLocked()}
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// View returns the current snapshot.
func (s *GameService) View() GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *GameService) broadcastLocked(event string) {
	update := Update{Event: event, View: s.snapshotLocked()}
	for ch := range s.subscribers {
		select {
		case ch <- update:
		default:
			// drop the oldest update so a slow screen never blocks the game
			select {
			case <-ch:
			default:
			}
			ch <- update
		}
	}
}

func (s *GameService) snapshotLocked() GameView {
	if s.round == nil {
		return GameView{Phase: "setup"}
	}

	view := GameView{
		TotalQuestions: s.round.Len(),
		Scores:         s.round.Board().Snapshot(),
		Colors:         teamColorMap(s.round.TeamCount()),
	}

	if s.round.Finished() {
		view.Phase = "gameOver"
		view.Winners = s.round.Winners()
		return view
	}

	view.Phase = "playing"
	view.QuestionNumber = s.round.Index() + 1
	view.TurnTeam = s.round.CurrentTurnTeam()
	if s.session == nil {
		return view
	}

	view.State = s.session.State().String()
	view.Mode = s.session.Mode().String()
	view.Prompt = s.session.Question().Prompt
	view.Remaining = s.session.Remaining()
	view.ReadyTeams = sortedTeams(s.session.Ready())
	view.Claimant = s.session.Claimant()
	if s.session.Mode() == game.ModeSquare {
		view.Options = s.session.Options()
	}
	if outcome, ok := s.session.Outcome(); ok {
		question := s.session.Question()
		view.Answer = question.Answer
		view.FunFact = question.FunFact
		view.Outcome = &outcome
	}
	return view
}

func teamColorMap(teamCount int) map[domain.TeamID]string {
	colors := make(map[domain.TeamID]string, teamCount)
	for i := 1; i <= teamCount; i++ {
		colors[domain.TeamID(i)] = domain.TeamColor(domain.TeamID(i))
	}
	return colors
}

func sortedTeams(teams []domain.TeamID) []domain.TeamID {
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })
	return teams
}
