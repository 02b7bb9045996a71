package game

import "squarebuzz/internal/domain"

// BuzzArbiter tracks readiness claims for the current question. The first
// team to claim becomes the authoritative claimant; later claims by other
// teams are no-ops until Reset.
type BuzzArbiter struct {
	ready    map[domain.TeamID]struct{}
	claimant domain.TeamID
}

func NewBuzzArbiter() *BuzzArbiter {
	return &BuzzArbiter{ready: make(map[domain.TeamID]struct{})}
}

// ClaimReady records a readiness claim and reports whether the team is now
// the authoritative claimant. Repeated claims by the claimant stay true;
// claims by other teams after arbitration are rejected.
func (a *BuzzArbiter) ClaimReady(team domain.TeamID) bool {
	if a.claimant != domain.NoTeam {
		return a.claimant == team
	}
	a.ready[team] = struct{}{}
	a.claimant = team
	return true
}

// IsClaimed reports whether an authoritative claimant exists.
func (a *BuzzArbiter) IsClaimed() bool {
	return a.claimant != domain.NoTeam
}

// Claimant returns the authoritative claimant, or NoTeam.
func (a *BuzzArbiter) Claimant() domain.TeamID {
	return a.claimant
}

// Ready returns the teams that have claimed readiness this question.
func (a *BuzzArbiter) Ready() []domain.TeamID {
	out := make([]domain.TeamID, 0, len(a.ready))
	for team := range a.ready {
		out = append(out, team)
	}
	return out
}

// Reset clears all claims. Each question gets a fresh session and arbiter,
// so this only matters when an arbiter is reused directly.
func (a *BuzzArbiter) Reset() {
	a.ready = make(map[domain.TeamID]struct{})
	a.claimant = domain.NoTeam
}
