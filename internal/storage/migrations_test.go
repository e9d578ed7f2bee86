package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsReachExpectedVersion(t *testing.T) {
	store := newTestStorage(t)

	var version int
	err := store.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// A second run finds nothing to apply and must not error.
	require.NoError(t, store.Migrate(ctx))

	var count int
	err := store.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestMigrationsAreOrderedAndUnique(t *testing.T) {
	seen := make(map[int]bool)
	prev := 0
	for _, m := range migrations {
		assert.Greater(t, m.Version, prev, "migration versions must be ascending")
		assert.False(t, seen[m.Version], "duplicate migration version %d", m.Version)
		assert.NotEmpty(t, m.Description)
		assert.NotNil(t, m.Up)
		seen[m.Version] = true
		prev = m.Version
	}
	assert.Equal(t, ExpectedSchemaVersion, prev)
}
