package game

import (
	"math/rand"

	"github.com/google/uuid"

	"squarebuzz/internal/domain"
)

// Points awarded per answer mode.
const (
	SquarePoints = 1
	BuzzPoints   = 5
)

// Mode is the answer mode chosen for a question.
type Mode int

const (
	ModeNone Mode = iota
	ModeSquare
	ModeBuzz
)

func (m Mode) String() string {
	switch m {
	case ModeSquare:
		return "square"
	case ModeBuzz:
		return "buzz"
	default:
		return "none"
	}
}

// State is the question session state machine position.
type State int

const (
	StateSelectingMode State = iota
	StateSquare
	StateBuzz
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateSelectingMode:
		return "selectingMode"
	case StateSquare:
		return "square"
	case StateBuzz:
		return "buzz"
	case StateRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// TickResult reports what a countdown tick did to the session.
type TickResult int

const (
	// TickIgnored means the tick was stale (wrong question identity, wrong
	// state, or an answer is already being judged) and changed nothing.
	TickIgnored TickResult = iota
	// TickCounted means a second was consumed and the countdown continues.
	TickCounted
	// TickExpired means the countdown reached zero and the session revealed
	// with no team credited.
	TickExpired
)

// Session is the per-question state machine: mode selection, countdown,
// buzz arbitration and outcome. It holds no locks and spawns no goroutines;
// the owning service serializes all calls and drives ticks through the
// Countdown scheduler, so stale callbacks are filtered by question identity
// rather than by flags.
type Session struct {
	id        uuid.UUID
	question  domain.Question
	options   []string
	state     State
	mode      Mode
	remaining int
	arbiter   *BuzzArbiter
	awaiting  bool // buzz answer submitted, verdict pending
	given     string
	outcome   domain.QuestionOutcome
	resolved  bool
}

// NewSession loads a question into a fresh session. The option order is
// shuffled once here and stays fixed for the question's lifetime.
func NewSession(q domain.Question, seconds int, rnd *rand.Rand) *Session {
	options := make([]string, 0, 1+len(q.WrongAnswers))
	options = append(options, q.Answer)
	options = append(options, q.WrongAnswers...)
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return &Session{
		id:        uuid.New(),
		question:  q,
		options:   options,
		state:     StateSelectingMode,
		remaining: seconds,
		arbiter:   NewBuzzArbiter(),
	}
}

// ID is the question identity used to key the countdown and to discard
// stale ticks and late verdicts.
func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Question() domain.Question { return s.question }
func (s *Session) Options() []string         { return s.options }
func (s *Session) State() State              { return s.state }
func (s *Session) Mode() Mode                { return s.mode }
func (s *Session) Remaining() int            { return s.remaining }
func (s *Session) Ready() []domain.TeamID    { return s.arbiter.Ready() }
func (s *Session) Claimant() domain.TeamID   { return s.arbiter.Claimant() }

// Outcome returns the question's outcome once revealed.
func (s *Session) Outcome() (domain.QuestionOutcome, bool) {
	return s.outcome, s.resolved
}

// ChooseMode leaves SelectingMode and starts the question proper. The
// caller arms the countdown on success.
func (s *Session) ChooseMode(m Mode) error {
	if s.state != StateSelectingMode {
		return domain.ErrWrongState
	}
	switch m {
	case ModeSquare:
		s.state = StateSquare
	case ModeBuzz:
		s.state = StateBuzz
	default:
		return domain.ErrWrongState
	}
	s.mode = m
	return nil
}

// ClaimReady registers a buzz-in and reports whether the team now holds
// answering rights. Claims outside an active mode are rejected.
func (s *Session) ClaimReady(team domain.TeamID) bool {
	if s.state != StateSquare && s.state != StateBuzz {
		return false
	}
	return s.arbiter.ClaimReady(team)
}

// SelectOption resolves a Square question. The readiness gate applies: only
// once a team holds the authoritative claim may an option be selected, and
// the selection is attributed to that claimant.
func (s *Session) SelectOption(option string) (domain.QuestionOutcome, error) {
	if s.state != StateSquare {
		return domain.QuestionOutcome{}, domain.ErrWrongState
	}
	if !s.arbiter.IsClaimed() {
		return domain.QuestionOutcome{}, domain.ErrNotClaimed
	}
	outcome := domain.QuestionOutcome{TeamID: s.arbiter.Claimant()}
	if option == s.question.Answer {
		outcome.Correct = true
		outcome.PointsAwarded = SquarePoints
	}
	s.reveal(outcome)
	return outcome, nil
}

// SubmitAnswer accepts the claimant's freeform answer in Buzz mode and
// returns the answering team. The caller cancels the countdown (an answer
// in before expiry beats the timer) and verifies the answer; the verdict
// comes back through ResolveAnswer.
func (s *Session) SubmitAnswer(given string) (domain.TeamID, error) {
	if s.state != StateBuzz || s.awaiting {
		return domain.NoTeam, domain.ErrWrongState
	}
	if !s.arbiter.IsClaimed() {
		return domain.NoTeam, domain.ErrNotClaimed
	}
	s.awaiting = true
	s.given = given
	return s.arbiter.Claimant(), nil
}

// ResolveAnswer applies a verification verdict. The verdict is discarded
// unless it targets the current question identity and the session is still
// waiting on it.
func (s *Session) ResolveAnswer(id uuid.UUID, verdict domain.Verdict) (domain.QuestionOutcome, bool) {
	if id != s.id || s.state != StateBuzz || !s.awaiting {
		return domain.QuestionOutcome{}, false
	}
	outcome := domain.QuestionOutcome{
		TeamID:      s.arbiter.Claimant(),
		Correct:     verdict.IsCorrect,
		Explanation: verdict.Explanation,
	}
	if verdict.IsCorrect {
		outcome.PointsAwarded = BuzzPoints
	}
	s.reveal(outcome)
	return outcome, true
}

// Tick consumes one countdown second. Ticks carrying a stale question
// identity, arriving outside a running mode, or landing while a submitted
// answer is being judged are ignored.
func (s *Session) Tick(id uuid.UUID) TickResult {
	if id != s.id || (s.state != StateSquare && s.state != StateBuzz) || s.awaiting {
		return TickIgnored
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return TickCounted
	}
	s.reveal(domain.QuestionOutcome{TeamID: domain.NoTeam})
	return TickExpired
}

// Reveal forces the answer open without crediting anyone, for host skips.
// Revealing an already revealed session returns the existing outcome.
func (s *Session) Reveal() domain.QuestionOutcome {
	if s.state == StateRevealed {
		return s.outcome
	}
	s.reveal(domain.QuestionOutcome{TeamID: domain.NoTeam})
	return s.outcome
}

func (s *Session) reveal(outcome domain.QuestionOutcome) {
	s.state = StateRevealed
	s.awaiting = false
	s.outcome = outcome
	s.resolved = true
}
