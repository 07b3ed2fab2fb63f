package ports

import (
	"context"

	"github.com/yol1/scoring-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, externalID, password, role string) (*domain.User, error)
	Login(ctx context.Context, externalID, password string) (string, *domain.User, error)
}
