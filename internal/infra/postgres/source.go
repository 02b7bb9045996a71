package postgres

import (
	"context"

	"github.com/rs/zerolog"

	"squarebuzz/internal/domain"
)

// QuestionSource fetches generated questions from a backing service.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, theme, language, difficulty string, count int) ([]domain.Question, error)
}

// ArchivingSource wraps a question source with the archive: in replay mode
// it serves the newest archived set for the parameters before generating,
// and every freshly generated set is archived best-effort.
type ArchivingSource struct {
	source  QuestionSource
	archive *Archive
	replay  bool
	log     zerolog.Logger
}

func NewArchivingSource(source QuestionSource, archive *Archive, replay bool, log zerolog.Logger) *ArchivingSource {
	return &ArchivingSource{source: source, archive: archive, replay: replay, log: log}
}

func (s *ArchivingSource) FetchQuestions(ctx context.Context, theme, language, difficulty string, count int) ([]domain.Question, error) {
	if s.replay {
		if questions, err := s.archive.LatestSet(ctx, theme, language, difficulty); err == nil {
			s.log.Debug().Str("theme", theme).Msg("replaying archived question set")
			return questions, nil
		}
	}

	questions, err := s.source.FetchQuestions(ctx, theme, language, difficulty, count)
	if err != nil {
		return nil, err
	}

	if err := s.archive.SaveSet(ctx, domain.QuestionSet{
		Theme:      theme,
		Language:   language,
		Difficulty: difficulty,
		Questions:  questions,
	}); err != nil {
		s.log.Warn().Err(err).Str("theme", theme).Msg("failed to archive question set")
	}
	return questions, nil
}
