package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"squarebuzz/internal/domain"
)

type fakeJudge struct {
	verdict domain.Verdict
	err     error
	calls   int
}

func (j *fakeJudge) Judge(_ context.Context, _, _, _, _ string) (domain.Verdict, error) {
	j.calls++
	return j.verdict, j.err
}

func TestExactMatchSkipsJudge(t *testing.T) {
	judge := &fakeJudge{}
	verifier := New(judge, zerolog.Nop())

	cases := [][2]string{
		{"Mars", "Mars"},
		{"mars", "Mars"},
		{"  MARS  ", "mars"},
	}
	for _, c := range cases {
		verdict := verifier.Verify(context.Background(), c[0], c[1], "q", "english")
		if !verdict.IsCorrect || verdict.Similarity != 1 || verdict.Explanation != ExactMatchExplanation {
			t.Fatalf("verify(%q, %q): unexpected verdict %+v", c[0], c[1], verdict)
		}
	}
	if judge.calls != 0 {
		t.Fatalf("exact matches must never call the judge, got %d calls", judge.calls)
	}
}

func TestNonMatchDelegatesToJudge(t *testing.T) {
	judge := &fakeJudge{verdict: domain.Verdict{IsCorrect: true, Explanation: "synonym accepted", Similarity: 0.92}}
	verifier := New(judge, zerolog.Nop())

	verdict := verifier.Verify(context.Background(), "the red planet", "Mars", "q", "english")
	if !verdict.IsCorrect || verdict.Explanation != "synonym accepted" {
		t.Fatalf("unexpected verdict %+v", verdict)
	}
	if judge.calls != 1 {
		t.Fatalf("expected one judge call, got %d", judge.calls)
	}
}

func TestJudgeFailureFallsBackToExactMatch(t *testing.T) {
	judge := &fakeJudge{err: errors.New("connection refused")}
	verifier := New(judge, zerolog.Nop())

	verdict := verifier.Verify(context.Background(), "the red planet", "Mars", "q", "english")
	if verdict.IsCorrect {
		t.Fatalf("fallback on non-matching answer must be incorrect, got %+v", verdict)
	}
	if verdict.Explanation != "" {
		t.Fatalf("fallback carries no explanation, got %q", verdict.Explanation)
	}
}

func TestSimilarityClamped(t *testing.T) {
	judge := &fakeJudge{verdict: domain.Verdict{IsCorrect: true, Similarity: 1.7}}
	verifier := New(judge, zerolog.Nop())

	if verdict := verifier.Verify(context.Background(), "a", "b", "q", "en"); verdict.Similarity != 1 {
		t.Fatalf("expected similarity clamped to 1, got %v", verdict.Similarity)
	}

	judge.verdict.Similarity = -0.2
	if verdict := verifier.Verify(context.Background(), "a", "b", "q", "en"); verdict.Similarity != 0 {
		t.Fatalf("expected similarity clamped to 0, got %v", verdict.Similarity)
	}
}

func TestNilJudgeStillResolves(t *testing.T) {
	verifier := New(nil, zerolog.Nop())

	if verdict := verifier.Verify(context.Background(), "mars", "Mars", "q", "en"); !verdict.IsCorrect {
		t.Fatalf("exact match must pass without a judge")
	}
	if verdict := verifier.Verify(context.Background(), "venus", "Mars", "q", "en"); verdict.IsCorrect {
		t.Fatalf("non-match without a judge must fail")
	}
}
