package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/value"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestWriteAndListEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entry, err := NewEntry("token-1", "sum", "reduce {|it, acc| $it + $acc}",
		value.NewInt(10, value.TestSpan()), 12*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, int64(12), entry.DurationMS)

	require.NoError(t, s.WriteEntry(ctx, entry))

	entries, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "sum", entries[0].Name)
	assert.Equal(t, "10", entries[0].ResultJSON)
}

func TestWriteEntryIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entry, err := NewEntry("token-1", "", "source",
		value.NewString("r", value.TestSpan()), time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, s.WriteEntry(ctx, entry))
	require.NoError(t, s.WriteEntry(ctx, entry), "duplicate IDs are silently ignored")

	entries, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	span := value.TestSpan()
	for i, src := range []string{"first", "second", "third"} {
		entry, err := NewEntry("token", "", src, value.NewInt(int64(i), span), 0)
		require.NoError(t, err)
		// Spread created_at so ordering does not depend on sub-ms
		// timestamp resolution.
		entry.CreatedAt = time.Date(2026, 8, 25, 12, 0, i, 0, time.UTC).Format(time.RFC3339Nano)
		require.NoError(t, s.WriteEntry(ctx, entry))
	}

	entries, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Source)
	assert.Equal(t, "second", entries[1].Source)
}

func TestListRecentEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNewEntryIDMatchesContentHash(t *testing.T) {
	result := value.NewInt(7, value.TestSpan())
	entry, err := NewEntry("tok", "", "src", result, 0)
	require.NoError(t, err)

	want, err := value.HistoryEntryID("tok", "src", result)
	require.NoError(t, err)
	assert.Equal(t, want, entry.ID)
}
