package clients

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"squarebuzz/internal/domain"
)

// QuestionClient fetches generated question sets from the upstream
// question-generation service, keyed by theme, language and difficulty.
type QuestionClient struct {
	base *BaseClient
	log  zerolog.Logger
}

func NewQuestionClient(baseURL string, token TokenProvider, log zerolog.Logger) *QuestionClient {
	return &QuestionClient{base: NewBaseClient(baseURL, token), log: log}
}

type questionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

// FetchQuestions requests count questions for the given parameters. A
// malformed payload, a non-auth upstream failure or an empty array all
// normalize to ErrEmptyQuestionSet; 401 and 403 surface as session-expired
// and access-denied respectively.
func (c *QuestionClient) FetchQuestions(ctx context.Context, theme, language, difficulty string, count int) ([]domain.Question, error) {
	query := url.Values{}
	query.Set("theme", theme)
	query.Set("language", language)
	query.Set("difficulty", difficulty)
	query.Set("count", strconv.Itoa(count))

	var resp questionsResponse
	err := c.base.doJSON(ctx, "GET", "/api/questions?"+query.Encode(), nil, &resp)
	if err != nil {
		var status *StatusError
		if errors.As(err, &status) {
			switch status.Code {
			case 401:
				return nil, domain.ErrSessionExpired
			case 403:
				return nil, domain.ErrAccessDenied
			}
		}
		c.log.Warn().Err(err).Str("theme", theme).Msg("question source failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrEmptyQuestionSet, err)
	}

	questions := sanitize(resp.Questions)
	if len(questions) == 0 {
		return nil, domain.ErrEmptyQuestionSet
	}
	return questions, nil
}

// sanitize drops entries the game cannot play: missing prompt or answer, or
// fewer than the three distractors Square mode needs. Extra distractors are
// trimmed so the option grid stays four wide.
func sanitize(in []domain.Question) []domain.Question {
	out := make([]domain.Question, 0, len(in))
	for _, q := range in {
		if q.Prompt == "" || q.Answer == "" || len(q.WrongAnswers) < 3 {
			continue
		}
		q.WrongAnswers = q.WrongAnswers[:3]
		out = append(out, q)
	}
	return out
}
