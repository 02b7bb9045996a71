package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"squarebuzz/internal/domain"
)

type countingSource struct {
	questions []domain.Question
	err       error
	calls     int
}

func (s *countingSource) FetchQuestions(_ context.Context, _, _, _ string, _ int) ([]domain.Question, error) {
	s.calls++
	return s.questions, s.err
}

func sampleSet() []domain.Question {
	return []domain.Question{{
		Prompt:       "q",
		Answer:       "a",
		WrongAnswers: []string{"b", "c", "d"},
	}}
}

func TestCacheHitSkipsSource(t *testing.T) {
	source := &countingSource{questions: sampleSet()}
	cache := NewQuestionCache(source, time.Minute)

	for i := 0; i < 3; i++ {
		questions, err := cache.FetchQuestions(context.Background(), "history", "english", "medium", 10)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(questions) != 1 {
			t.Fatalf("fetch %d: got %d questions", i, len(questions))
		}
	}
	if source.calls != 1 {
		t.Fatalf("expected a single source call, got %d", source.calls)
	}
}

func TestDifferentParamsAreSeparateEntries(t *testing.T) {
	source := &countingSource{questions: sampleSet()}
	cache := NewQuestionCache(source, time.Minute)

	_, _ = cache.FetchQuestions(context.Background(), "history", "english", "medium", 10)
	_, _ = cache.FetchQuestions(context.Background(), "history", "french", "medium", 10)
	_, _ = cache.FetchQuestions(context.Background(), "science", "english", "medium", 10)

	if source.calls != 3 {
		t.Fatalf("expected 3 source calls for 3 keys, got %d", source.calls)
	}
}

func TestExpiredEntryRefetches(t *testing.T) {
	source := &countingSource{questions: sampleSet()}
	cache := NewQuestionCache(source, time.Minute)

	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	_, _ = cache.FetchQuestions(context.Background(), "history", "english", "medium", 10)

	now = now.Add(2 * time.Minute)
	_, _ = cache.FetchQuestions(context.Background(), "history", "english", "medium", 10)

	if source.calls != 2 {
		t.Fatalf("expected a refetch past the ttl, got %d calls", source.calls)
	}
}

func TestSourceErrorsAreNotCached(t *testing.T) {
	source := &countingSource{err: domain.ErrEmptyQuestionSet}
	cache := NewQuestionCache(source, time.Minute)

	if _, err := cache.FetchQuestions(context.Background(), "t", "en", "easy", 5); !errors.Is(err, domain.ErrEmptyQuestionSet) {
		t.Fatalf("expected source error passed through, got %v", err)
	}

	source.err = nil
	source.questions = sampleSet()
	if _, err := cache.FetchQuestions(context.Background(), "t", "en", "easy", 5); err != nil {
		t.Fatalf("recovered source must serve: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("failure must not occupy the cache, got %d calls", source.calls)
	}
}

func TestStaticSource(t *testing.T) {
	source := NewStaticSource(map[string][]domain.Question{
		Key("demo", "english", "medium"): sampleSet(),
	})

	if _, err := source.FetchQuestions(context.Background(), "demo", "english", "medium", 10); err != nil {
		t.Fatalf("known key: %v", err)
	}
	if _, err := source.FetchQuestions(context.Background(), "demo", "french", "medium", 10); !errors.Is(err, domain.ErrEmptyQuestionSet) {
		t.Fatalf("unknown key: expected ErrEmptyQuestionSet, got %v", err)
	}
}
