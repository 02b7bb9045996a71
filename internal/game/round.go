package game

import "squarebuzz/internal/domain"

// Round owns the ordered question list, the current index and the score
// board for one round. It hands questions to the per-question Session and
// applies each question's outcome exactly once.
type Round struct {
	questions []domain.Question
	teamCount int
	index     int
	board     *ScoreBoard
	finished  bool
	recorded  bool
}

// StartRound validates the inputs and begins a round at question zero with
// an all-zero score board.
func StartRound(questions []domain.Question, teamCount int) (*Round, error) {
	if len(questions) == 0 {
		return nil, domain.ErrEmptyQuestionSet
	}
	if teamCount < domain.MinTeams || teamCount > domain.MaxTeams {
		return nil, domain.ErrInvalidTeamCount
	}
	return &Round{
		questions: questions,
		teamCount: teamCount,
		board:     NewScoreBoard(teamCount),
	}, nil
}

// CurrentTurnTeam is the round-robin turn holder for the current question,
// used as display and fallback attribution when nobody has buzzed.
func (r *Round) CurrentTurnTeam() domain.TeamID {
	return domain.TeamID(r.index%r.teamCount + 1)
}

// CurrentQuestion returns the question at the current index.
func (r *Round) CurrentQuestion() domain.Question {
	return r.questions[r.index]
}

// Index is the zero-based position of the current question.
func (r *Round) Index() int { return r.index }

// Len is the number of questions in the round.
func (r *Round) Len() int { return len(r.questions) }

// TeamCount is the number of teams playing.
func (r *Round) TeamCount() int { return r.teamCount }

// ValidTeam reports whether a team id belongs to this round.
func (r *Round) ValidTeam(team domain.TeamID) bool {
	return team >= 1 && int(team) <= r.teamCount
}

// RecordOutcome applies a question outcome to the board. Only the first
// call per question counts; the session can only resolve once, so a second
// call here means a stale duplicate.
func (r *Round) RecordOutcome(outcome domain.QuestionOutcome) {
	if r.recorded || r.finished {
		return
	}
	r.recorded = true
	if outcome.Correct && outcome.TeamID != domain.NoTeam {
		r.board.Add(outcome.TeamID, outcome.PointsAwarded)
	}
}

// Advance moves to the next question, or marks the round finished after the
// last one. It reports whether the round is now finished.
func (r *Round) Advance() bool {
	if r.finished {
		return true
	}
	if r.index >= len(r.questions)-1 {
		r.finished = true
		return true
	}
	r.index++
	r.recorded = false
	return false
}

// Finished reports whether the round has played its last question.
func (r *Round) Finished() bool { return r.finished }

// Board exposes the round's score board.
func (r *Round) Board() *ScoreBoard { return r.board }

// Winners returns the teams holding the maximum score.
func (r *Round) Winners() []domain.TeamID { return r.board.Winners() }
