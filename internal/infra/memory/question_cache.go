package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"squarebuzz/internal/domain"
)

// QuestionSource fetches generated questions from a backing service.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, theme, language, difficulty string, count int) ([]domain.Question, error)
}

// QuestionCache caches generated question sets with a TTL so replaying the
// same theme does not hit the generation service again.
type QuestionCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCache(source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSet),
	}
}

func (c *QuestionCache) FetchQuestions(ctx context.Context, theme, language, difficulty string, count int) ([]domain.Question, error) {
	key := cacheKey(theme, language, difficulty)
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.source.FetchQuestions(ctx, theme, language, difficulty, count)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = cachedSet{
			questions: questions,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func cacheKey(theme, language, difficulty string) string {
	return theme + "|" + language + "|" + difficulty
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticSource serves a fixed map of question sets, for tests and the
// offline demo mode.
type StaticSource struct {
	sets map[string][]domain.Question
}

// NewStaticSource keys sets by "theme|language|difficulty".
func NewStaticSource(sets map[string][]domain.Question) *StaticSource {
	return &StaticSource{sets: sets}
}

func (s *StaticSource) FetchQuestions(_ context.Context, theme, language, difficulty string, _ int) ([]domain.Question, error) {
	if questions, ok := s.sets[cacheKey(theme, language, difficulty)]; ok {
		return questions, nil
	}
	return nil, domain.ErrEmptyQuestionSet
}

// Key builds the map key NewStaticSource expects.
func Key(theme, language, difficulty string) string {
	return cacheKey(theme, language, difficulty)
}
