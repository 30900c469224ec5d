package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"parking-cli/parking"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileBackendMissingFile(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), DefaultDataFile))
	_, err := b.Read(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileBackendWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DefaultDataFile)
	b := NewFileBackend(path)
	ctx := context.Background()

	require.NoError(t, b.Write(ctx, []byte(`{"a":1}`)))
	require.NoError(t, b.Write(ctx, []byte(`{"b":2}`)))

	data, err := b.Read(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"b":2}`, string(data))

	_, err = os.Stat(path + tmpSuffix)
	require.True(t, os.IsNotExist(err))
}

func TestFileBackendDirectoryPath(t *testing.T) {
	b := NewFileBackend(t.TempDir())
	_, err := b.Read(context.Background())
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestStoreLoadInitialisesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDataFile)
	store := NewStore(NewFileBackend(path), discardLogger())

	grid, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, parking.NewGrid(), grid)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	stored, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.Equal(t, parking.NewGrid(), stored)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDataFile)
	store := NewStore(NewFileBackend(path), discardLogger())
	ctx := context.Background()

	for _, grid := range []*parking.Grid{parking.NewGrid(), fullGrid()} {
		require.NoError(t, store.Save(ctx, grid))
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, grid, loaded)
	}
}

func TestStoreLoadMalformedFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDataFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"parking_spaces": [[null]]}`), 0o644))

	store := NewStore(NewFileBackend(path), discardLogger())
	grid, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, parking.NewGrid(), grid)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"parking_spaces": [[null]]}`, string(data))
}

func TestOpenBackendDefaultsToFile(t *testing.T) {
	b, err := OpenBackend(context.Background(), Options{})
	require.NoError(t, err)
	require.Equal(t, "file:"+DefaultDataFile, b.Name())

	b, err = OpenBackend(context.Background(), Options{DataFile: "/tmp/x.json"})
	require.NoError(t, err)
	require.Equal(t, "file:/tmp/x.json", b.Name())
}
