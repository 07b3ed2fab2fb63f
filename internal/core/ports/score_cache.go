package ports

import (
	"context"

	"github.com/yol1/scoring-system/internal/core/domain"
)

// ScoreCache is an optional read-through cache in front of ScoreRepository.
// Get reports found=false on a miss; errors are treated as misses by callers.
type ScoreCache interface {
	Get(ctx context.Context, code string) (value int, found bool, err error)
	Set(ctx context.Context, score *domain.Score) error
}
