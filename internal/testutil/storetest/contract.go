// Package storetest holds the behavioural contract every ports.CredentialStore
// implementation must satisfy.
package storetest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yol1/scoring-system/internal/core/domain"
	"github.com/yol1/scoring-system/internal/core/ports"
)

// Run exercises store against the credential store contract. Each subtest
// uses fresh identifiers so the same store may be shared.
func Run(t *testing.T, store ports.CredentialStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, store.Ping(ctx))
	})

	t.Run("user round trip", func(t *testing.T) {
		externalID := "ext-" + uuid.NewString()
		user := &domain.User{
			ID:           uuid.NewString(),
			ExternalID:   externalID,
			PasswordHash: "$2a$10$hash",
			Role:         domain.RoleAdmin,
			CreatedAt:    time.Now().UTC().Truncate(time.Second),
		}

		_, err := store.Users().Create(ctx, user)
		require.NoError(t, err)

		found, err := store.Users().FindByExternalID(ctx, externalID)
		require.NoError(t, err)
		require.Equal(t, user.ID, found.ID)
		require.Equal(t, user.Role, found.Role)

		dup := *user
		dup.ID = uuid.NewString()
		_, err = store.Users().Create(ctx, &dup)
		require.ErrorIs(t, err, domain.ErrUserExists)

		_, err = store.Users().FindByExternalID(ctx, "missing-"+uuid.NewString())
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("score uniqueness", func(t *testing.T) {
		code := "code-" + uuid.NewString()

		require.NoError(t, store.Scores().Create(ctx, &domain.Score{Code: code, Value: 12, CreatedAt: time.Now()}))
		err := store.Scores().Create(ctx, &domain.Score{Code: code, Value: 99, CreatedAt: time.Now()})
		require.ErrorIs(t, err, domain.ErrScoreExists)

		found, err := store.Scores().FindByCode(ctx, code)
		require.NoError(t, err)
		require.Equal(t, 12, found.Value)

		_, err = store.Scores().FindByCode(ctx, "missing-"+uuid.NewString())
		require.ErrorIs(t, err, domain.ErrScoreNotFound)

		all, err := store.Scores().List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, all)
	})

	t.Run("codes are compared byte for byte", func(t *testing.T) {
		base := "Case-" + uuid.NewString()
		variants := []string{
			base,
			strings.ToLower(base),
			strings.ToUpper(base),
			" " + base,
			base + " ",
			base + "\u00e9",
			base + "e\u0301",
		}

		for i, code := range variants {
			require.NoError(t, store.Scores().Create(ctx, &domain.Score{Code: code, Value: i, CreatedAt: time.Now()}), "create %q", code)
		}
		for i, code := range variants {
			found, err := store.Scores().FindByCode(ctx, code)
			require.NoError(t, err, "find %q", code)
			require.Equal(t, code, found.Code)
			require.Equal(t, i, found.Value, "code %q resolved to another record", code)
		}
	})

	t.Run("long codes", func(t *testing.T) {
		code := "long-" + uuid.NewString() + strings.Repeat("x", 1000)

		require.NoError(t, store.Scores().Create(ctx, &domain.Score{Code: code, Value: 7, CreatedAt: time.Now()}))
		found, err := store.Scores().FindByCode(ctx, code)
		require.NoError(t, err)
		require.Equal(t, code, found.Code)
		require.Equal(t, 7, found.Value)

		_, err = store.Scores().FindByCode(ctx, code[:len(code)-1])
		require.ErrorIs(t, err, domain.ErrScoreNotFound)
	})

	t.Run("external ids are compared byte for byte", func(t *testing.T) {
		base := "User-" + uuid.NewString()
		for _, externalID := range []string{base, strings.ToLower(base), base + " "} {
			user := &domain.User{
				ID:           uuid.NewString(),
				ExternalID:   externalID,
				PasswordHash: "$2a$10$hash",
				Role:         domain.RoleUser,
				CreatedAt:    time.Now().UTC().Truncate(time.Second),
			}
			_, err := store.Users().Create(ctx, user)
			require.NoError(t, err, "create %q", externalID)

			found, err := store.Users().FindByExternalID(ctx, externalID)
			require.NoError(t, err)
			require.Equal(t, user.ID, found.ID, "external id %q resolved to another user", externalID)
		}
	})

	t.Run("concurrent score insert", func(t *testing.T) {
		code := "race-" + uuid.NewString()
		const goroutines = 20

		var (
			wg        sync.WaitGroup
			successes atomic.Int32
		)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Scores().Create(ctx, &domain.Score{Code: code, Value: 1, CreatedAt: time.Now()})
				if err == nil {
					successes.Add(1)
				} else if !errors.Is(err, domain.ErrScoreExists) {
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, int32(1), successes.Load())
	})
}
