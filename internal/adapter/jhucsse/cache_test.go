package jhucsse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock fetcher ---

type mockFetcher struct {
	data  []byte
	err   error
	calls int
}

func (m *mockFetcher) FetchConfirmed(_ context.Context) ([]byte, error) {
	m.calls++
	return m.data, m.err
}

func newTestCache(t *testing.T, inner Fetcher) *CachedClient {
	t.Helper()
	c, err := NewCachedClient(inner, t.TempDir(), time.Hour, discardLogger())
	require.NoError(t, err)
	return c
}

// --- tests ---

func TestCachedClient_FetchesAndWritesCache(t *testing.T) {
	inner := &mockFetcher{data: []byte(testCSVBody)}
	c := newTestCache(t, inner)

	data, err := c.FetchConfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCSVBody, string(data))
	assert.Equal(t, 1, inner.calls)

	cached, err := os.ReadFile(c.path)
	require.NoError(t, err)
	assert.Equal(t, testCSVBody, string(cached))
}

func TestCachedClient_ServesFreshCache(t *testing.T) {
	inner := &mockFetcher{data: []byte(testCSVBody)}
	c := newTestCache(t, inner)

	_, err := c.FetchConfirmed(context.Background())
	require.NoError(t, err)

	// Second call is served from disk; the fetcher stays idle.
	data, err := c.FetchConfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCSVBody, string(data))
	assert.Equal(t, 1, inner.calls)
}

func TestCachedClient_RefetchesWhenStale(t *testing.T) {
	inner := &mockFetcher{data: []byte(testCSVBody)}
	c := newTestCache(t, inner)

	_, err := c.FetchConfirmed(context.Background())
	require.NoError(t, err)

	// Move the clock past max age: the cached copy no longer qualifies.
	c.clock = clockwork.NewFakeClockAt(time.Now().Add(2 * time.Hour))

	_, err = c.FetchConfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedClient_ServesStaleOnFetchFailure(t *testing.T) {
	dir := t.TempDir()
	inner := &mockFetcher{err: errors.New("network down")}
	c, err := NewCachedClient(inner, dir, time.Hour, discardLogger())
	require.NoError(t, err)

	// A stale copy exists on disk from an earlier run.
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFileName), []byte(testCSVBody), 0o644))
	c.clock = clockwork.NewFakeClockAt(time.Now().Add(2 * time.Hour))

	data, err := c.FetchConfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCSVBody, string(data))
	assert.Equal(t, 1, inner.calls)
}

func TestCachedClient_FailsWithoutAnyData(t *testing.T) {
	inner := &mockFetcher{err: errors.New("network down")}
	c := newTestCache(t, inner)

	_, err := c.FetchConfirmed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
}
