package ports

import (
	"context"

	"github.com/yol1/scoring-system/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrUserExists when the
	// external ID is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByExternalID returns domain.ErrUserNotFound on a miss.
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}
