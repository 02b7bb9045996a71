package clients

import (
	"context"
	"fmt"

	"squarebuzz/internal/domain"
)

// JudgeClient calls the semantic answer-judgment collaborator. It is the
// only blocking external call made while a question is live.
type JudgeClient struct {
	base *BaseClient
}

func NewJudgeClient(baseURL string, token TokenProvider) *JudgeClient {
	return &JudgeClient{base: NewBaseClient(baseURL, token)}
}

type judgeRequest struct {
	GivenAnswer   string `json:"givenAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Question      string `json:"question"`
	Language      string `json:"language"`
}

// Judge submits an answer for semantic judgment. Every failure mode,
// network, status or parse, collapses into ErrVerificationUnavailable so
// the verifier can fall back without inspecting causes.
func (c *JudgeClient) Judge(ctx context.Context, given, correct, questionText, language string) (domain.Verdict, error) {
	req := judgeRequest{
		GivenAnswer:   given,
		CorrectAnswer: correct,
		Question:      questionText,
		Language:      language,
	}
	var verdict domain.Verdict
	if err := c.base.doJSON(ctx, "POST", "/api/verify-answer", req, &verdict); err != nil {
		return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrVerificationUnavailable, err)
	}
	return verdict, nil
}
