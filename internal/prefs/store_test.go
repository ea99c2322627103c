package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := []Record{
		{},
		{FontScale: 2, Contrast: ContrastHigh},
		{FontScale: -1, Spacing: true, DyslexiaFont: true},
		{Contrast: ContrastInvert, HighlightLinks: true, BigCursor: true, ReaderEnabled: true},
	}

	for _, want := range records {
		store := NewStore(NewMemoryBackend())
		store.Save(ctx, want)
		assert.Equal(t, want, store.Load(ctx))
	}
}

func TestStoreLoadAbsent(t *testing.T) {
	store := NewStore(NewMemoryBackend())
	assert.Equal(t, Default(), store.Load(context.Background()))
}

func TestStoreLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{not json", `"a string"`, ""} {
		backend := NewMemoryBackend()
		require.NoError(t, backend.Set(ctx, DefaultKey, raw))

		store := NewStore(backend)
		assert.Equal(t, Default(), store.Load(ctx), "raw=%q", raw)
	}
}

func TestStoreLoadPartial(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, DefaultKey, `{"spacing":true}`))

	got := NewStore(backend).Load(ctx)
	assert.True(t, got.Spacing)
	assert.Equal(t, 0, got.FontScale)
	assert.Equal(t, ContrastNormal, got.Contrast)
}

func TestStoreLoadFailedBackend(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Close())

	// A dead backend still yields a usable record.
	store := NewStore(backend)
	assert.Equal(t, Default(), store.Load(context.Background()))
}

func TestStoreSaveClamps(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())
	store.Save(ctx, Record{FontScale: 11})
	assert.Equal(t, FontScaleMax, store.Load(ctx).FontScale)
}

func TestStoreCustomKey(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	store := NewStore(backend, WithKey("kiosk-profile"))
	store.Save(ctx, Record{Spacing: true})

	_, err := backend.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := backend.Get(ctx, "kiosk-profile")
	require.NoError(t, err)
	assert.Contains(t, raw, `"spacing":true`)
}

func TestFileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Set(ctx, DefaultKey, `{"fontScale":1}`))
	raw, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `{"fontScale":1}`, raw)
}

func TestFileBackendSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Set(context.Background(), DefaultKey, "{}"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultKey+".json", entries[0].Name())
}

func TestFileBackendWatch(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	defer backend.Close()

	changed := make(chan struct{}, 1)
	require.NoError(t, backend.Watch(DefaultKey, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))

	// Simulate another process rewriting the slot.
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultKey+".json"), []byte("{}"), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watch callback never fired")
	}
}

func TestFileBackendWatchAfterClose(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	assert.ErrorIs(t, backend.Watch(DefaultKey, func() {}), ErrClosed)
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Set(ctx, DefaultKey, `{"contrast":"dark"}`))
	require.NoError(t, backend.Set(ctx, DefaultKey, `{"contrast":"high"}`))

	raw, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `{"contrast":"high"}`, raw)
}
