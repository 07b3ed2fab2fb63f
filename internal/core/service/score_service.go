package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/yol1/scoring-system/internal/core/domain"
	"github.com/yol1/scoring-system/internal/core/ports"
	"github.com/yol1/scoring-system/internal/pkg/metrics"
)

type ScoreService struct {
	repo   ports.ScoreRepository
	cache  ports.ScoreCache
	flight singleflight.Group
	logger zerolog.Logger
}

// NewScoreService returns a ScoreService. cache may be nil, in which case
// every lookup goes to the repository.
func NewScoreService(repo ports.ScoreRepository, cache ports.ScoreCache, logger zerolog.Logger) *ScoreService {
	if cache == nil {
		cache = noopCache{}
	}
	return &ScoreService{repo: repo, cache: cache, logger: logger}
}

// flightTimeout bounds a shared lookup once it no longer follows any single
// caller's context.
const flightTimeout = 10 * time.Second

// GetOrCreate returns the score for code, generating and persisting it on the
// first lookup. Concurrent first lookups inside this process are collapsed
// into one store round trip; across processes the store's unique constraint
// decides the winner and losers re-read the stored record.
//
// The shared lookup runs detached from the caller that started it, so a
// cancelled caller returns ctx.Err() without failing the others.
func (s *ScoreService) GetOrCreate(ctx context.Context, code string) (*ports.ScoreResult, error) {
	if value, ok := s.cached(ctx, code); ok {
		metrics.ScoreLookupsTotal.WithLabelValues("cache_hit").Inc()
		return &ports.ScoreResult{Code: code, Value: value}, nil
	}

	// Only the caller whose closure runs performed the insert; callers that
	// joined an in-flight lookup share the value but not the Created flag.
	leader := false
	ch := s.flight.DoChan(code, func() (any, error) {
		leader = true
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return s.lookupOrInsert(flightCtx, code)
	})

	var r singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r = <-ch:
	}
	if r.Err != nil {
		return nil, r.Err
	}

	res := *r.Val.(*ports.ScoreResult)
	if !leader {
		res.Created = false
	}
	return &res, nil
}

func (s *ScoreService) lookupOrInsert(ctx context.Context, code string) (*ports.ScoreResult, error) {
	existing, err := s.repo.FindByCode(ctx, code)
	switch {
	case err == nil:
		metrics.ScoreLookupsTotal.WithLabelValues("store_hit").Inc()
		s.remember(ctx, existing)
		return &ports.ScoreResult{Code: code, Value: existing.Value}, nil
	case !errors.Is(err, domain.ErrScoreNotFound):
		return nil, fmt.Errorf("find score: %w", err)
	}

	score := &domain.Score{
		Code:      code,
		Value:     DeterministicScore(code),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, score); err != nil {
		if !errors.Is(err, domain.ErrScoreExists) {
			return nil, fmt.Errorf("create score: %w", err)
		}

		// Another creator won the race; its record is authoritative.
		stored, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("re-read score after conflict: %w", err)
		}
		metrics.ScoreLookupsTotal.WithLabelValues("race_lost").Inc()
		s.logger.Debug().Str("code", code).Msg("score created concurrently, using stored value")
		s.remember(ctx, stored)
		return &ports.ScoreResult{Code: code, Value: stored.Value}, nil
	}

	metrics.ScoreLookupsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("code", code).Int("value", score.Value).Msg("score generated")
	s.remember(ctx, score)
	return &ports.ScoreResult{Code: code, Value: score.Value, Created: true}, nil
}

// List returns every stored score.
func (s *ScoreService) List(ctx context.Context) ([]domain.Score, error) {
	scores, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	if scores == nil {
		scores = []domain.Score{}
	}
	return scores, nil
}

// Seed inserts a score with an explicit value. It is the backing operation of
// the test seeding endpoint and, like generated scores, never overwrites.
func (s *ScoreService) Seed(ctx context.Context, code string, value int) (*domain.Score, error) {
	if value < domain.MinScore || value > domain.MaxScore {
		return nil, domain.ErrInvalidScore
	}

	score := &domain.Score{Code: code, Value: value, CreatedAt: time.Now().UTC()}
	if err := s.repo.Create(ctx, score); err != nil {
		if errors.Is(err, domain.ErrScoreExists) {
			return nil, err
		}
		return nil, fmt.Errorf("seed score: %w", err)
	}

	metrics.ScoresSeededTotal.Inc()
	s.logger.Info().Str("code", code).Int("value", value).Msg("score seeded")
	s.remember(ctx, score)
	return score, nil
}

func (s *ScoreService) cached(ctx context.Context, code string) (int, bool) {
	value, found, err := s.cache.Get(ctx, code)
	if err != nil {
		metrics.ScoreCacheErrorsTotal.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Str("code", code).Msg("score cache read failed, falling back to store")
		return 0, false
	}
	return value, found
}

func (s *ScoreService) remember(ctx context.Context, score *domain.Score) {
	if err := s.cache.Set(ctx, score); err != nil {
		metrics.ScoreCacheErrorsTotal.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Str("code", score.Code).Msg("failed to cache score")
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (int, bool, error) { return 0, false, nil }
func (noopCache) Set(context.Context, *domain.Score) error { return nil }
