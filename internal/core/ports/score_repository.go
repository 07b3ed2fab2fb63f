package ports

import (
	"context"

	"github.com/yol1/scoring-system/internal/core/domain"
)

// ScoreRepository persists score records keyed by code.
type ScoreRepository interface {
	// Create inserts a new score. Returns domain.ErrScoreExists when the code
	// is already stored; existing records are never overwritten.
	Create(ctx context.Context, score *domain.Score) error
	// FindByCode returns domain.ErrScoreNotFound on a miss.
	FindByCode(ctx context.Context, code string) (*domain.Score, error)
	List(ctx context.Context) ([]domain.Score, error)
}
