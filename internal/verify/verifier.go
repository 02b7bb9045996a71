// Package verify decides whether a freeform answer is correct. Exact
// matches resolve locally; everything else is judged by a remote semantic
// collaborator whose failures degrade to the exact-match result.
package verify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"squarebuzz/internal/domain"
)

// ExactMatchExplanation is the canonical message for fast-path matches.
const ExactMatchExplanation = "exact match"

// Judge is the remote semantic-judgment collaborator. It tolerates
// synonyms, typos and phrasing variance.
type Judge interface {
	Judge(ctx context.Context, given, correct, questionText, language string) (domain.Verdict, error)
}

// Verifier combines the exact-match fast path with the remote judge.
type Verifier struct {
	judge Judge
	log   zerolog.Logger
}

func New(judge Judge, log zerolog.Logger) *Verifier {
	return &Verifier{judge: judge, log: log}
}

// Verify never fails: a broken judge falls back to the exact-match boolean
// so a question can always resolve.
func (v *Verifier) Verify(ctx context.Context, given, correct, questionText, language string) domain.Verdict {
	if exactMatch(given, correct) {
		return domain.Verdict{IsCorrect: true, Explanation: ExactMatchExplanation, Similarity: 1}
	}
	if v.judge == nil {
		// no judge configured: exact matching is the whole game
		return domain.Verdict{IsCorrect: false, Similarity: 0}
	}

	verdict, err := v.judge.Judge(ctx, given, correct, questionText, language)
	if err != nil {
		v.log.Warn().Err(err).Msg("answer judge unavailable, falling back to exact match")
		return domain.Verdict{IsCorrect: false, Similarity: 0}
	}
	return clamp(verdict)
}

func exactMatch(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}

func clamp(v domain.Verdict) domain.Verdict {
	if v.Similarity < 0 {
		v.Similarity = 0
	}
	if v.Similarity > 1 {
		v.Similarity = 1
	}
	return v
}
