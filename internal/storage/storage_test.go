package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookapp/daybook/internal/storage/prefs"
	"github.com/daybookapp/daybook/internal/storage/secret"
)

func TestOpen_CreatesDataDirAndMigrates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir() + "/nested/data"

	stores, err := Open(ctx, dir)
	require.NoError(t, err)
	defer stores.Close()

	// The migrated schema accepts reads immediately.
	value, err := stores.Prefs.Get(ctx, prefs.KeyUserName)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestOpen_DataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	stores, err := Open(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, stores.Prefs.Set(ctx, prefs.KeyUserName, []byte("Ana")))
	require.NoError(t, stores.Prefs.Set(ctx, prefs.KeyDiaryEntries, []byte(`[{"id":"1"}]`)))
	require.NoError(t, stores.Secrets.Set(ctx, secret.KeyUserPIN, "1234"))
	require.NoError(t, stores.Close())

	reopened, err := Open(ctx, dir)
	require.NoError(t, err)
	defer reopened.Close()

	name, err := reopened.Prefs.Get(ctx, prefs.KeyUserName)
	require.NoError(t, err)
	assert.Equal(t, []byte("Ana"), name)

	entries, err := reopened.Prefs.Get(ctx, prefs.KeyDiaryEntries)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), entries)

	pin, err := reopened.Secrets.Get(ctx, secret.KeyUserPIN)
	require.NoError(t, err)
	assert.Equal(t, "1234", pin)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	stores, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, stores.Close())

	// A second open reruns goose against the same database.
	stores, err = Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, stores.Close())
}

func TestOpen_FailsWhenDirIsAFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	stores, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, stores.Close())

	_, err = Open(ctx, dir+"/daybook.db")
	require.Error(t, err)
}
