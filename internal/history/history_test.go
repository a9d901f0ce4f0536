package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, expr string) Entry {
	return Entry{ID: id, Expression: expr, Description: "d-" + id, Timestamp: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
}

func expressions(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Expression)
	}
	return out
}

func TestPushNewestFirstDedupedCapped(t *testing.T) {
	t.Parallel()

	var list []Entry
	for i := 1; i <= 7; i++ {
		list = Push(list, entry(fmt.Sprint(i), fmt.Sprintf("*/%d * * * *", i)), DefaultLimit)
	}
	assert.Equal(t, []string{
		"*/7 * * * *", "*/6 * * * *", "*/5 * * * *", "*/4 * * * *", "*/3 * * * *",
	}, expressions(list))

	list = Push(list, entry("again", "*/4 * * * *"), DefaultLimit)
	require.Len(t, list, 5)
	assert.Equal(t, "again", list[0].ID)
	assert.Equal(t, []string{
		"*/4 * * * *", "*/7 * * * *", "*/6 * * * *", "*/5 * * * *", "*/3 * * * *",
	}, expressions(list))
}

func TestPushDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []Entry{entry("a", "x"), entry("b", "y")}
	_ = Push(in, entry("c", "x"), 2)
	assert.Equal(t, "a", in[0].ID)
	assert.Equal(t, "b", in[1].ID)
}

func TestNewEntry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	e := NewEntry(" 0 9 * * 1 ", "At 09:00 AM, only on Monday", now)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "0 9 * * 1", e.Expression)
	assert.Equal(t, time.UTC, e.Timestamp.Location())
	assert.NotEqual(t, e.ID, NewEntry("x", "y", now).ID)
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	store := NewFileStore(path, 3)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	for i := 1; i <= 4; i++ {
		_, err := store.Append(ctx, entry(fmt.Sprint(i), fmt.Sprintf("e%d", i)))
		require.NoError(t, err)
	}
	got, err := store.Append(ctx, entry("5", "e3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e4", "e2"}, expressions(got))

	reopened := NewFileStore(path, 3)
	loaded, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, loaded)

	require.NoError(t, reopened.Delete(ctx, "4"))
	loaded, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e2"}, expressions(loaded))

	require.NoError(t, reopened.Clear(ctx))
	loaded, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	_, err = os.Stat(path + ".lock")
	assert.True(t, os.IsNotExist(err), "lock file must be released")
}

func TestFileStoreCorruptDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path, 0).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse history")
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFileStore(filepath.Join(t.TempDir(), "h.json"), 0)
	_, err := store.Append(ctx, entry("1", "x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	s, err := Open(Options{Path: filepath.Join(t.TempDir(), "h.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(Options{Backend: "NONE"})
	require.NoError(t, err)
	got, err := s.Append(context.Background(), entry("1", "x"))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Open(Options{Backend: "file"})
	assert.Error(t, err)
	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)
	_, err = Open(Options{Backend: "sqlite"})
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("DEVKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("DEVKIT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	key := fmt.Sprintf("devkit:test:history:%d", time.Now().UnixNano())
	store, err := NewRedisStore(url, key, 2)
	require.NoError(t, err)
	defer store.Close()
	defer store.Clear(ctx)

	_, err = store.Append(ctx, entry("1", "a"))
	require.NoError(t, err)
	_, err = store.Append(ctx, entry("2", "b"))
	require.NoError(t, err)
	got, err := store.Append(ctx, entry("3", "a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, expressions(got))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, loaded)

	require.NoError(t, store.Delete(ctx, "2"))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, expressions(loaded))
}
