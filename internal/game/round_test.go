package game

import (
	"fmt"
	"testing"

	"squarebuzz/internal/domain"
)

func questions(n int) []domain.Question {
	out := make([]domain.Question, n)
	for i := range out {
		out[i] = domain.Question{
			Prompt:       fmt.Sprintf("question %d", i+1),
			Answer:       "right",
			WrongAnswers: []string{"a", "b", "c"},
		}
	}
	return out
}

func TestStartRoundRejectsEmptySet(t *testing.T) {
	if _, err := StartRound(nil, 2); err != domain.ErrEmptyQuestionSet {
		t.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
	}
}

func TestStartRoundValidatesTeamCount(t *testing.T) {
	for _, count := range []int{0, 1, 7} {
		if _, err := StartRound(questions(3), count); err != domain.ErrInvalidTeamCount {
			t.Fatalf("teamCount=%d: expected ErrInvalidTeamCount, got %v", count, err)
		}
	}
}

func TestTurnRotationForAllTeamCounts(t *testing.T) {
	for teams := domain.MinTeams; teams <= domain.MaxTeams; teams++ {
		round, err := StartRound(questions(13), teams)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		for !round.Finished() {
			want := domain.TeamID(round.Index()%teams + 1)
			if got := round.CurrentTurnTeam(); got != want {
				t.Fatalf("teams=%d index=%d: expected turn team %d, got %d", teams, round.Index(), want, got)
			}
			round.Advance()
		}
	}
}

func TestRecordOutcomeAppliesOncePerQuestion(t *testing.T) {
	round, _ := StartRound(questions(2), 2)

	outcome := domain.QuestionOutcome{TeamID: 1, Correct: true, PointsAwarded: 5}
	round.RecordOutcome(outcome)
	round.RecordOutcome(outcome)

	if got := round.Board().Score(1); got != 5 {
		t.Fatalf("duplicate record must not double-count, got %d", got)
	}

	round.Advance()
	round.RecordOutcome(domain.QuestionOutcome{TeamID: 2, Correct: true, PointsAwarded: 1})
	if got := round.Board().Score(2); got != 1 {
		t.Fatalf("next question must accept a new outcome, got %d", got)
	}
}

func TestIncorrectOrUnattributedOutcomesScoreNothing(t *testing.T) {
	round, _ := StartRound(questions(2), 2)

	round.RecordOutcome(domain.QuestionOutcome{TeamID: 1, Correct: false, PointsAwarded: 0})
	round.Advance()
	round.RecordOutcome(domain.QuestionOutcome{TeamID: domain.NoTeam, Correct: false})

	if got := round.Board().Total(); got != 0 {
		t.Fatalf("expected untouched board, got total %d", got)
	}
}

func TestAdvanceFinishesAfterLastQuestion(t *testing.T) {
	round, _ := StartRound(questions(2), 2)

	if round.Advance() {
		t.Fatalf("round must not finish with a question left")
	}
	if !round.Advance() {
		t.Fatalf("round must finish after the last question")
	}
	if !round.Finished() {
		t.Fatalf("expected finished round")
	}
	if !round.Advance() {
		t.Fatalf("advancing a finished round stays finished")
	}
}

// Final score total must be exactly the sum of recorded awards: no
// double-counting, no drift.
func TestScoreTotalMatchesRecordedAwards(t *testing.T) {
	const k = 9
	round, _ := StartRound(questions(k), 3)

	wantTotal := 0
	for i := 0; !round.Finished(); i++ {
		points := 0
		team := domain.TeamID(i%3 + 1)
		correct := i%2 == 0
		if correct {
			points = BuzzPoints
			if i%4 == 0 {
				points = SquarePoints
			}
			wantTotal += points
		}
		round.RecordOutcome(domain.QuestionOutcome{TeamID: team, Correct: correct, PointsAwarded: points})
		round.Advance()
	}

	if got := round.Board().Total(); got != wantTotal {
		t.Fatalf("expected total %d, got %d", wantTotal, got)
	}
}

func TestRoundWinners(t *testing.T) {
	round, _ := StartRound(questions(3), 3)
	round.RecordOutcome(domain.QuestionOutcome{TeamID: 1, Correct: true, PointsAwarded: 5})
	round.Advance()
	round.RecordOutcome(domain.QuestionOutcome{TeamID: 2, Correct: true, PointsAwarded: 5})
	round.Advance()
	round.RecordOutcome(domain.QuestionOutcome{TeamID: 3, Correct: true, PointsAwarded: 3})
	round.Advance()

	winners := round.Winners()
	if len(winners) != 2 || winners[0] != 1 || winners[1] != 2 {
		t.Fatalf("expected winners {1, 2}, got %v", winners)
	}
}
