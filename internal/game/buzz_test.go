package game

import (
	"testing"

	"squarebuzz/internal/domain"
)

func TestFirstClaimWins(t *testing.T) {
	arbiter := NewBuzzArbiter()

	if !arbiter.ClaimReady(2) {
		t.Fatalf("first claim should win")
	}
	if arbiter.ClaimReady(3) {
		t.Fatalf("second team's claim should be rejected")
	}
	if got := arbiter.Claimant(); got != 2 {
		t.Fatalf("expected claimant 2, got %d", got)
	}
}

func TestClaimIsIdempotentPerTeam(t *testing.T) {
	arbiter := NewBuzzArbiter()

	arbiter.ClaimReady(1)
	if !arbiter.ClaimReady(1) {
		t.Fatalf("claimant re-claiming should stay authoritative")
	}
	if got := len(arbiter.Ready()); got != 1 {
		t.Fatalf("repeated claims must not grow the ready set, got %d entries", got)
	}
}

func TestResetClearsClaims(t *testing.T) {
	arbiter := NewBuzzArbiter()
	arbiter.ClaimReady(1)

	arbiter.Reset()

	if arbiter.IsClaimed() {
		t.Fatalf("expected no claimant after reset")
	}
	if arbiter.Claimant() != domain.NoTeam {
		t.Fatalf("expected NoTeam after reset, got %d", arbiter.Claimant())
	}
	if !arbiter.ClaimReady(3) {
		t.Fatalf("new question should accept a fresh claim")
	}
}
