package deadletter_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/typefire/pkg/typefire/deadletter"
)

func sampleRecord(id string) deadletter.Record {
	return deadletter.Record{
		ID:         id,
		EventType:  "List<String>",
		Qualifiers: []string{"audit"},
		Payload:    []byte(`["a","b"]`),
		FiredAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

// stores runs the same contract tests against every Store implementation.
func stores(t *testing.T) map[string]deadletter.Store {
	t.Helper()

	sqlite, err := deadletter.NewSQLiteStore(filepath.Join(t.TempDir(), "dl.db"))
	require.NoError(t, err)

	return map[string]deadletter.Store{
		"memory": deadletter.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			rec := sampleRecord("fire-1")
			require.NoError(t, store.Record(rec))

			got, err := store.Get("fire-1")
			require.NoError(t, err)
			assert.Equal(t, rec.ID, got.ID)
			assert.Equal(t, rec.EventType, got.EventType)
			assert.Equal(t, rec.Qualifiers, got.Qualifiers)
			assert.Equal(t, rec.Payload, got.Payload)
			assert.WithinDuration(t, rec.FiredAt, got.FiredAt, time.Millisecond)
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			_, err := store.Get("missing")
			assert.ErrorIs(t, err, deadletter.ErrNotFound)
		})
	}
}

func TestStore_ListOldestFirst(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			base := time.Now().UTC()
			for i, id := range []string{"fire-a", "fire-b", "fire-c"} {
				rec := sampleRecord(id)
				rec.FiredAt = base.Add(time.Duration(i) * time.Second)
				require.NoError(t, store.Record(rec))
			}

			recs, err := store.List()
			require.NoError(t, err)
			require.Len(t, recs, 3)
			assert.Equal(t, "fire-a", recs[0].ID)
			assert.Equal(t, "fire-b", recs[1].ID)
			assert.Equal(t, "fire-c", recs[2].ID)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			require.NoError(t, store.Record(sampleRecord("fire-1")))
			require.NoError(t, store.Delete("fire-1"))

			_, err := store.Get("fire-1")
			assert.ErrorIs(t, err, deadletter.ErrNotFound)

			recs, err := store.List()
			require.NoError(t, err)
			assert.Empty(t, recs)
		})
	}
}

func TestStore_RecordOverwritesSameID(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			first := sampleRecord("fire-1")
			require.NoError(t, store.Record(first))

			second := sampleRecord("fire-1")
			second.EventType = "Integer"
			require.NoError(t, store.Record(second))

			got, err := store.Get("fire-1")
			require.NoError(t, err)
			assert.Equal(t, "Integer", got.EventType)

			recs, err := store.List()
			require.NoError(t, err)
			assert.Len(t, recs, 1)
		})
	}
}

func TestStore_ClosedOperationsFail(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Close())

			assert.ErrorIs(t, store.Record(sampleRecord("fire-1")), deadletter.ErrStoreClosed)
			_, err := store.Get("fire-1")
			assert.ErrorIs(t, err, deadletter.ErrStoreClosed)
			_, err = store.List()
			assert.ErrorIs(t, err, deadletter.ErrStoreClosed)
			assert.ErrorIs(t, store.Delete("fire-1"), deadletter.ErrStoreClosed)

			// Close is idempotent.
			assert.NoError(t, store.Close())
		})
	}
}

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dl.db")

	store1, err := deadletter.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Record(sampleRecord("fire-1")))
	require.NoError(t, store1.Close())

	store2, err := deadletter.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	got, err := store2.Get("fire-1")
	require.NoError(t, err)
	assert.Equal(t, "List<String>", got.EventType)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := deadletter.NewSQLiteStore("/nonexistent/path/dl.db")
	assert.Error(t, err)
}
