package game

import (
	"testing"

	"squarebuzz/internal/domain"
)

func TestScoreBoardAddAndTotal(t *testing.T) {
	board := NewScoreBoard(3)

	board.Add(1, 5)
	board.Add(2, 1)
	board.Add(1, 1)

	if got := board.Score(1); got != 6 {
		t.Fatalf("expected team 1 to have 6 points, got %d", got)
	}
	if got := board.Total(); got != 7 {
		t.Fatalf("expected total 7, got %d", got)
	}
}

func TestScoreBoardIgnoresInvalidInput(t *testing.T) {
	board := NewScoreBoard(2)

	board.Add(0, 5)
	board.Add(3, 5)
	board.Add(1, -1)

	if got := board.Total(); got != 0 {
		t.Fatalf("expected board untouched, got total %d", got)
	}
}

func TestWinnersSupportsTies(t *testing.T) {
	board := NewScoreBoard(3)
	board.Add(1, 5)
	board.Add(2, 5)
	board.Add(3, 3)

	winners := board.Winners()
	if len(winners) != 2 || winners[0] != 1 || winners[1] != 2 {
		t.Fatalf("expected winners {1, 2}, got %v", winners)
	}
}

func TestWinnersAllZeroIsFullTie(t *testing.T) {
	board := NewScoreBoard(2)

	winners := board.Winners()
	if len(winners) != 2 {
		t.Fatalf("expected both teams tied at zero, got %v", winners)
	}
}

func TestSnapshotKeyedByTeamID(t *testing.T) {
	board := NewScoreBoard(2)
	board.Add(2, 5)

	snap := board.Snapshot()
	if snap[domain.TeamID(1)] != 0 || snap[domain.TeamID(2)] != 5 {
		t.Fatalf("unexpected snapshot %v", snap)
	}
}
