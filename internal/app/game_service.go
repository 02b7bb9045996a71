// Package app wires the round controller, question session, countdown and
// verifier into the single game a process hosts.
package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"squarebuzz/internal/domain"
	"squarebuzz/internal/game"
)

// QuestionSource fetches generated questions for a round.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, theme, language, difficulty string, count int) ([]domain.Question, error)
}

// Verifier judges a freeform answer. It never fails; broken collaborators
// degrade to exact matching inside the implementation.
type Verifier interface {
	Verify(ctx context.Context, given, correct, questionText, language string) domain.Verdict
}

// Identity gates entry. CheckAccess returns ErrSessionExpired or
// ErrAccessDenied (or a plain error for outages) and is responsible for
// clearing dead credentials itself.
type Identity interface {
	CheckAccess(ctx context.Context) error
}

// Settings are the host-tunable game parameters.
type Settings struct {
	TimePerQuestion   int // seconds, per question
	QuestionsPerRound int
}

func (s Settings) withDefaults() Settings {
	if s.TimePerQuestion <= 0 {
		s.TimePerQuestion = 30
	}
	if s.QuestionsPerRound <= 0 {
		s.QuestionsPerRound = 10
	}
	return s
}

// GameService owns the one active round per process. A single mutex
// serializes host commands, countdown ticks and verification verdicts; the
// asynchronous re-entries (ticks, verdicts) each carry the question
// identity they were issued for and are discarded when it no longer
// matches.
type GameService struct {
	source   QuestionSource
	verifier Verifier
	identity Identity
	clock    clockwork.Clock
	settings Settings
	log      zerolog.Logger

	mu          sync.Mutex
	rnd         *rand.Rand
	round       *game.Round
	session     *game.Session
	countdown   *game.Countdown
	language    string
	subscribers map[chan Update]struct{}
}

func NewGameService(source QuestionSource, verifier Verifier, identity Identity, clock clockwork.Clock, settings Settings, log zerolog.Logger) *GameService {
	return &GameService{
		source:      source,
		verifier:    verifier,
		identity:    identity,
		clock:       clock,
		settings:    settings.withDefaults(),
		log:         log,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		countdown:   game.NewCountdown(clock),
		subscribers: make(map[chan Update]struct{}),
	}
}

// StartRound checks access, loads a question set and begins a round. On any
// failure the round stays inactive.
func (s *GameService) StartRound(ctx context.Context, theme, language, difficulty string, teamCount int) error {
	if err := s.identity.CheckAccess(ctx); err != nil {
		return err
	}

	questions, err := s.source.FetchQuestions(ctx, theme, language, difficulty, s.settings.QuestionsPerRound)
	if err != nil {
		return err
	}
	if len(questions) > s.settings.QuestionsPerRound {
		questions = questions[:s.settings.QuestionsPerRound]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := game.StartRound(questions, teamCount)
	if err != nil {
		return err
	}
	s.countdown.Cancel()
	s.round = round
	s.language = language
	s.newSessionLocked()
	s.broadcastLocked(EventState)
	s.log.Info().Str("theme", theme).Int("questions", round.Len()).Int("teams", teamCount).Msg("round started")
	return nil
}

// ChooseMode picks Square or Buzz for the current question and starts the
// countdown.
func (s *GameService) ChooseMode(mode game.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(); err != nil {
		return err
	}
	if err := s.session.ChooseMode(mode); err != nil {
		return err
	}
	s.armTickLocked()
	s.broadcastLocked(EventState)
	return nil
}

// ClaimReady records a team buzz-in for the current question.
func (s *GameService) ClaimReady(team domain.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(); err != nil {
		return err
	}
	if !s.round.ValidTeam(team) {
		return domain.ErrInvalidTeam
	}
	s.session.ClaimReady(team)
	s.broadcastLocked(EventState)
	return nil
}

// SelectOption resolves a Square question with the claimant's pick.
func (s *GameService) SelectOption(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(); err != nil {
		return err
	}
	outcome, err := s.session.SelectOption(option)
	if err != nil {
		return err
	}
	s.countdown.Cancel()
	s.round.RecordOutcome(outcome)
	s.broadcastLocked(EventRevealed)
	return nil
}

// SubmitAnswer takes the Buzz claimant's freeform answer. The countdown
// stops immediately: an answer in before expiry beats the timer. The
// verdict is judged off the lock and applied only if it still targets this
// question.
func (s *GameService) SubmitAnswer(given string) error {
	s.mu.Lock()
	if err := s.requireSessionLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if _, err := s.session.SubmitAnswer(given); err != nil {
		s.mu.Unlock()
		return err
	}
	s.countdown.Cancel()
	id := s.session.ID()
	question := s.session.Question()
	language := s.language
	s.broadcastLocked(EventState)
	s.mu.Unlock()

	go func() {
		verdict := s.verifier.Verify(context.Background(), given, question.Answer, question.Prompt, language)
		s.applyVerdict(id, verdict)
	}()
	return nil
}

// Reveal is the host override that opens the answer without crediting
// anyone.
func (s *GameService) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(); err != nil {
		return err
	}
	s.countdown.Cancel()
	outcome := s.session.Reveal()
	s.round.RecordOutcome(outcome)
	s.broadcastLocked(EventRevealed)
	return nil
}

// NextQuestion advances the round once the current question is revealed.
func (s *GameService) NextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(); err != nil {
		return err
	}
	if s.session.State() != game.StateRevealed {
		return domain.ErrWrongState
	}
	s.countdown.Cancel()
	if s.round.Advance() {
		s.session = nil
		s.broadcastLocked(EventGameOver)
		s.log.Info().Ints("winners", teamInts(s.round.Winners())).Msg("round finished")
		return nil
	}
	s.newSessionLocked()
	s.broadcastLocked(EventState)
	return nil
}

// NewGame discards the finished (or aborted) round and returns to setup.
func (s *GameService) NewGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdown.Cancel()
	s.round = nil
	s.session = nil
	s.broadcastLocked(EventState)
	return nil
}

// handleTick consumes one countdown second for the identified question.
func (s *GameService) handleTick(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return
	}
	switch s.session.Tick(id) {
	case game.TickIgnored:
		return
	case game.TickCounted:
		s.armTickLocked()
		s.broadcastLocked(EventTick)
	case game.TickExpired:
		if outcome, ok := s.session.Outcome(); ok {
			s.round.RecordOutcome(outcome)
		}
		s.broadcastLocked(EventRevealed)
	}
}

// applyVerdict lands an asynchronous verification result. Verdicts for a
// question that has already advanced or revealed are discarded.
func (s *GameService) applyVerdict(id uuid.UUID, verdict domain.Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return
	}
	outcome, ok := s.session.ResolveAnswer(id, verdict)
	if !ok {
		s.log.Debug().Str("question", id.String()).Msg("discarding verdict for stale question")
		return
	}
	s.round.RecordOutcome(outcome)
	s.broadcastLocked(EventRevealed)
}

func (s *GameService) newSessionLocked() {
	s.session = game.NewSession(s.round.CurrentQuestion(), s.settings.TimePerQuestion, s.rnd)
}

func (s *GameService) armTickLocked() {
	s.countdown.Arm(s.session.ID(), time.Second, s.handleTick)
}

func (s *GameService) requireSessionLocked() error {
	if s.round == nil {
		return domain.ErrRoundNotActive
	}
	if s.session == nil {
		return domain.ErrRoundFinished
	}
	return nil
}

func teamInts(teams []domain.TeamID) []int {
	out := make([]int, len(teams))
	for i, t := range teams {
		out[i] = int(t)
	}
	return out
}
