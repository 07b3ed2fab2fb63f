package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yol1/scoring-system/internal/core/domain"
)

type ScoreRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewScoreRepository(db *sql.DB, d Dialect) *ScoreRepository {
	return &ScoreRepository{db: db, dialect: d}
}

// Create inserts a score row. The primary key on code turns a concurrent
// duplicate into domain.ErrScoreExists; the stored row is never updated.
func (r *ScoreRepository) Create(ctx context.Context, s *domain.Score) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := r.dialect.Rebind(`INSERT INTO scores (code, value, created_at) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, s.Code, s.Value, s.CreatedAt.Unix()); err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return domain.ErrScoreExists
		}
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (r *ScoreRepository) FindByCode(ctx context.Context, code string) (*domain.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := r.dialect.Rebind(`SELECT code, value, created_at FROM scores WHERE code = ?`)

	var (
		s         domain.Score
		createdAt int64
	)
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&s.Code, &s.Value, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScoreNotFound
		}
		return nil, fmt.Errorf("find score: %w", err)
	}
	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &s, nil
}

// List returns every score ordered by code.
func (r *ScoreRepository) List(ctx context.Context) ([]domain.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT code, value, created_at FROM scores ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	scores := []domain.Score{}
	for rows.Next() {
		var (
			s         domain.Score
			createdAt int64
		)
		if err := rows.Scan(&s.Code, &s.Value, &createdAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		s.CreatedAt = time.Unix(createdAt, 0).UTC()
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return scores, nil
}
