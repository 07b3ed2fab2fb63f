package ports

import (
	"context"

	"github.com/yol1/scoring-system/internal/core/domain"
)

// ScoreResult is returned by GetOrCreate.
type ScoreResult struct {
	Code  string
	Value int
	// Created is true only for the call that inserted the record.
	Created bool
}

// ScoreService defines use-case operations for scores.
type ScoreService interface {
	GetOrCreate(ctx context.Context, code string) (*ScoreResult, error)
	List(ctx context.Context) ([]domain.Score, error)
	Seed(ctx context.Context, code string, value int) (*domain.Score, error)
}
