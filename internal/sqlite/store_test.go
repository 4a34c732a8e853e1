package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndFindByDigest(t *testing.T) {
	store := openTestStore(t)

	run := &Run{
		Scenario:  "hotel-sale",
		Digest:    "digest-1",
		Steps:     2,
		TotalCash: 1000,
		TotalTax:  400,
		Fitness:   600,
		Liabilities: map[string]float64{
			"Mr. Jones": 396,
			"JonesCo":   4,
		},
	}

	id, err := store.SaveRun(run)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, run.RunID)
	assert.False(t, run.CreatedAt.IsZero())

	found, err := store.FindByDigest("digest-1")
	require.NoError(t, err)
	assert.Equal(t, id, found.RunID)
	assert.Equal(t, "hotel-sale", found.Scenario)
	assert.Equal(t, 2, found.Steps)
	assert.InDelta(t, 1000, found.TotalCash, 1e-9)
	assert.InDelta(t, 400, found.TotalTax, 1e-9)
	assert.InDelta(t, 600, found.Fitness, 1e-9)
	assert.Equal(t, run.Liabilities, found.Liabilities)
	assert.WithinDuration(t, time.Now().UTC(), found.CreatedAt, time.Minute)
}

func TestFindByDigestNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.FindByDigest("never-evaluated")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestFindByDigestReturnsLatest(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(&Run{Scenario: "first", Digest: "shared"})
	require.NoError(t, err)
	second, err := store.SaveRun(&Run{Scenario: "second", Digest: "shared"})
	require.NoError(t, err)

	found, err := store.FindByDigest("shared")
	require.NoError(t, err)
	assert.Equal(t, second, found.RunID)
	assert.Equal(t, "second", found.Scenario)
}

func TestListRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for _, name := range []string{"one", "two", "three"} {
		id, err := store.SaveRun(&Run{Scenario: name, Digest: "digest-" + name})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].RunID, "newest first")
	assert.Equal(t, ids[0], runs[2].RunID)

	limited, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, ids[2], limited[0].RunID)
	assert.Equal(t, ids[1], limited[1].RunID)
}

func TestListRunsEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestClosedStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "close is idempotent")

	_, err := store.SaveRun(&Run{})
	assert.ErrorIs(t, err, ErrStoreClosed)

	_, err = store.FindByDigest("any")
	assert.ErrorIs(t, err, ErrStoreClosed)

	_, err = store.ListRuns(1)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestReopenKeepsRuns(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	id, err := store.SaveRun(&Run{Scenario: "persisted", Digest: "d"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.FindByDigest("d")
	require.NoError(t, err)
	assert.Equal(t, id, found.RunID)
}
