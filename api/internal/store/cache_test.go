package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEngine struct {
	out   string
	err   error
	calls int
}

func (e *countingEngine) Name() string     { return "fake" }
func (e *countingEngine) GetModel() string { return "m1" }
func (e *countingEngine) Extract(context.Context, []byte, string) (string, error) {
	e.calls++
	return e.out, e.err
}

type memStore struct {
	rows    map[string]string
	findErr error
	upserts int
}

func newMemStore() *memStore { return &memStore{rows: map[string]string{}} }

func (m *memStore) Find(_ context.Context, hash, engine, model string, _ time.Duration) (string, error) {
	if m.findErr != nil {
		return "", m.findErr
	}
	raw, ok := m.rows[hash+engine+model]
	if !ok {
		return "", ErrNotFound
	}
	return raw, nil
}

func (m *memStore) Upsert(_ context.Context, hash, engine, model, raw string) error {
	m.upserts++
	m.rows[hash+engine+model] = raw
	return nil
}

const okAnswer = `{"roxzone":"08:30"}`

func TestCachedEngine_MemoryHit(t *testing.T) {
	next := &countingEngine{out: okAnswer}
	c, err := NewCachedEngine(next, 4, nil, 0, zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		raw, err := c.Extract(context.Background(), []byte("img"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, okAnswer, raw)
	}
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "fake", c.Name())
	assert.Equal(t, "m1", c.GetModel())
}

func TestCachedEngine_DifferentImagesMiss(t *testing.T) {
	next := &countingEngine{out: okAnswer}
	c, err := NewCachedEngine(next, 4, nil, 0, zerolog.Nop())
	require.NoError(t, err)

	_, _ = c.Extract(context.Background(), []byte("a"), "image/png")
	_, _ = c.Extract(context.Background(), []byte("b"), "image/png")
	assert.Equal(t, 2, next.calls)
}

func TestCachedEngine_StoreLayer(t *testing.T) {
	repo := newMemStore()
	next := &countingEngine{out: okAnswer}
	c1, err := NewCachedEngine(next, 4, repo, time.Hour, zerolog.Nop())
	require.NoError(t, err)

	_, err = c1.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)

	// fresh process, empty LRU: answer comes from the store
	c2, err := NewCachedEngine(next, 4, repo, time.Hour, zerolog.Nop())
	require.NoError(t, err)
	raw, err := c2.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, okAnswer, raw)
	assert.Equal(t, 1, next.calls)
}

func TestCachedEngine_StoreErrorFallsThrough(t *testing.T) {
	repo := newMemStore()
	repo.findErr = errors.New("connection refused")
	next := &countingEngine{out: okAnswer}
	c, err := NewCachedEngine(next, 4, repo, 0, zerolog.Nop())
	require.NoError(t, err)

	raw, err := c.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, okAnswer, raw)
	assert.Equal(t, 1, next.calls)
}

func TestCachedEngine_DoesNotCacheUnparsable(t *testing.T) {
	repo := newMemStore()
	next := &countingEngine{out: "sorry, no times found"}
	c, err := NewCachedEngine(next, 4, repo, 0, zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		raw, err := c.Extract(context.Background(), []byte("img"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, "sorry, no times found", raw)
	}
	assert.Equal(t, 2, next.calls)
	assert.Zero(t, repo.upserts)
}

func TestCachedEngine_UpstreamErrorNotCached(t *testing.T) {
	next := &countingEngine{err: errors.New("boom")}
	c, err := NewCachedEngine(next, 4, nil, 0, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.Extract(context.Background(), []byte("img"), "image/png")
	assert.Error(t, err)
	_, err = c.Extract(context.Background(), []byte("img"), "image/png")
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestSafeDSNSummary(t *testing.T) {
	assert.Equal(t, "host=db port=5432 db=hyrox user=app",
		SafeDSNSummary("postgres://app:secret@db:5432/hyrox?sslmode=disable"))
	assert.Equal(t, "host=db db=hyrox user=app", SafeDSNSummary("postgres://app:secret@db/hyrox"))
	assert.Equal(t, "dsn: parse error", SafeDSNSummary("::"))
}
