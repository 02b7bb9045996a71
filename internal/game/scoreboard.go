package game

import "squarebuzz/internal/domain"

// ScoreBoard accumulates points per team over a round. Scores are indexed by
// validated TeamID, never by display strings, and only ever grow within a
// round.
type ScoreBoard struct {
	scores []int // index = TeamID - 1
}

// NewScoreBoard returns an all-zero board for teamCount teams. The caller
// validates teamCount; the board itself just sizes the slice.
func NewScoreBoard(teamCount int) *ScoreBoard {
	return &ScoreBoard{scores: make([]int, teamCount)}
}

// Add credits points to a team. The round controller guarantees at most one
// call per question; the board does not enforce that itself.
func (b *ScoreBoard) Add(team domain.TeamID, points int) {
	if !b.valid(team) || points <= 0 {
		return
	}
	b.scores[team-1] += points
}

// Score returns a single team's points.
func (b *ScoreBoard) Score(team domain.TeamID) int {
	if !b.valid(team) {
		return 0
	}
	return b.scores[team-1]
}

// Total is the sum of all points on the board.
func (b *ScoreBoard) Total() int {
	total := 0
	for _, s := range b.scores {
		total += s
	}
	return total
}

// Winners returns every team whose score equals the maximum. Ties of any
// size are possible; with all-zero scores every team wins.
func (b *ScoreBoard) Winners() []domain.TeamID {
	max := 0
	for _, s := range b.scores {
		if s > max {
			max = s
		}
	}
	winners := make([]domain.TeamID, 0, len(b.scores))
	for i, s := range b.scores {
		if s == max {
			winners = append(winners, domain.TeamID(i+1))
		}
	}
	return winners
}

// Snapshot returns scores keyed by team id, safe to hand to callers.
func (b *ScoreBoard) Snapshot() map[domain.TeamID]int {
	out := make(map[domain.TeamID]int, len(b.scores))
	for i, s := range b.scores {
		out[domain.TeamID(i+1)] = s
	}
	return out
}

func (b *ScoreBoard) valid(team domain.TeamID) bool {
	return team >= 1 && int(team) <= len(b.scores)
}
