package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"squarebuzz/internal/domain"
)

// Archive stores every generated question set as a JSONB row, keyed by the
// generation parameters. The newest row per key can be replayed instead of
// hitting the generation service, mirroring how development builds reuse
// logged sets.
type Archive struct {
	pool *pgxpool.Pool
}

func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

func (a *Archive) SaveSet(ctx context.Context, set domain.QuestionSet) error {
	data, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	_, err = a.pool.Exec(ctx,
		`INSERT INTO question_sets (theme, language, difficulty, data) VALUES ($1, $2, $3, $4)`,
		set.Theme, set.Language, set.Difficulty, data)
	if err != nil {
		return fmt.Errorf("archive question set: %w", err)
	}
	return nil
}

// LatestSet loads the most recently archived set for the parameters.
// Returns ErrEmptyQuestionSet when nothing is archived or the stored JSON
// does not decode.
func (a *Archive) LatestSet(ctx context.Context, theme, language, difficulty string) ([]domain.Question, error) {
	var raw []byte
	err := a.pool.QueryRow(ctx,
		`SELECT data FROM question_sets
		 WHERE theme=$1 AND language=$2 AND difficulty=$3
		 ORDER BY created_at DESC LIMIT 1`,
		theme, language, difficulty).Scan(&raw)
	if err != nil {
		return nil, domain.ErrEmptyQuestionSet
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil || len(questions) == 0 {
		return nil, domain.ErrEmptyQuestionSet
	}
	return questions, nil
}
