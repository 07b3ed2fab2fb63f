//go:build integration

package sqlstore_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yol1/scoring-system/internal/infrastructure/db/sqlstore"
	"github.com/yol1/scoring-system/internal/testutil/containers"
	"github.com/yol1/scoring-system/internal/testutil/storetest"
)

func TestPostgresStore_Contract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	store, err := sqlstore.Open(ctx, sqlstore.Config{Driver: "postgres", DSN: containers.PostgresDSN(t)}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	storetest.Run(t, store)
}

func TestMySQLStore_Contract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	store, err := sqlstore.Open(ctx, sqlstore.Config{Driver: "mysql", DSN: containers.MySQLDSN(t)}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	storetest.Run(t, store)
}
