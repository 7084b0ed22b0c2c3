package botparam

import (
	"context"
	"testing"
	"time"

	"iidxbot/internal/apperr"
	"iidxbot/internal/db"
	"iidxbot/internal/telemetry"

	"github.com/stretchr/testify/require"
)

func setupStore(t testing.TB) Store {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	database, err := db.OpenMigrated(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })

	return NewStore(database, telemetry.SlogAPI{})
}

func TestDefaults(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	volume, err := store.Volume(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, volume)

	last, err := store.Get(ctx, ModuleOnMessage, KeyFollowSuitLastSent)
	require.NoError(t, err)
	require.Equal(t, "", last)

	missing, err := store.Get(ctx, "nope", "nope")
	require.NoError(t, err)
	require.Equal(t, "", missing)
}

func TestSetAndSwap(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetVolume(ctx, 42))
	volume, err := store.Volume(ctx)
	require.NoError(t, err)
	require.Equal(t, 42, volume)

	previous, err := store.Swap(ctx, ModuleOnMessage, KeyFollowSuitLastSent, "gg")
	require.NoError(t, err)
	require.Equal(t, "", previous)

	previous, err = store.Swap(ctx, ModuleOnMessage, KeyFollowSuitLastSent, "")
	require.NoError(t, err)
	require.Equal(t, "gg", previous)

	require.NoError(t, store.Set(ctx, "custom", "key", "v1"))
	value, err := store.Get(ctx, "custom", "key")
	require.NoError(t, err)
	require.Equal(t, "v1", value)
}

func TestCorruptVolume(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ModuleOnMessage, KeyCommentVolume, "loud"))
	_, err := store.Volume(ctx)
	require.ErrorIs(t, err, apperr.ErrCatalog)
}
