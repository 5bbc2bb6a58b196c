package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent/dialect"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestBlobQueries_Dialects(t *testing.T) {
	tests := []struct {
		dialect     string
		placeholder string
	}{
		{dialect.SQLite, "?"},
		{dialect.Postgres, "$1"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			q := blobQueries{dialect: tt.dialect}

			ddl, args := q.createTable()
			assert.Empty(t, args)
			assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS blobs")
			assert.Contains(t, ddl, "name varchar(255) NOT NULL PRIMARY KEY")

			get, args := q.get("k")
			assert.Contains(t, get, tt.placeholder)
			assert.Equal(t, []any{"k"}, args)
		})
	}
}

func TestCreateTable_Idempotent(t *testing.T) {
	s := openTestStore(t)

	ddl, _ := blobQueries{dialect: dialect.SQLite}.createTable()
	_, err := s.DB().Exec(ddl)
	require.NoError(t, err, "re-running the DDL must be a no-op")

	var name string
	require.NoError(t, s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'blobs'").Scan(&name))
	assert.Equal(t, "blobs", name)
}

// blobContract exercises the Get/Set/Remove semantics every Blob must share.
func blobContract(t *testing.T, b Blob) {
	t.Helper()
	ctx := context.Background()

	_, found, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found, "missing key must report not found")

	require.NoError(t, b.Set(ctx, "k", []byte(`{"a":1}`)))
	got, found, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, b.Set(ctx, "k", []byte(`{"a":2}`)))
	got, _, err = b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got), "set must overwrite")

	require.NoError(t, b.Remove(ctx, "k"))
	_, found, err = b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, b.Remove(ctx, "k"), "removing a missing key is not an error")
}

func TestSQLiteBlob(t *testing.T) {
	blobContract(t, openTestStore(t))
}

func TestMemoryBlob(t *testing.T) {
	blobContract(t, NewMemoryBlob())
}

func TestPostgresBlob(t *testing.T) {
	dsn := os.Getenv("SATDRILL_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SATDRILL_TEST_POSTGRES_DSN not set")
	}
	s, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	blobContract(t, s)
}

func TestSQLiteBlob_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, DefaultModelKey, []byte("payload")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, found, err := s.Get(ctx, DefaultModelKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "payload", string(got))
}

func TestModelRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewModelRepo(openTestStore(t), "")
	assert.Equal(t, DefaultModelKey, repo.Key())

	m, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, m, "no model saved yet")

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	key := catalog.NewTopicKey("math", "quadratics")
	want := NewModel()
	want.Topics[key] = &TopicState{Rating: 777, Seen: 2, Correct: 1, Wrong: 1, Fatigue: 0.2, Last: &now}
	want.Items["m8"] = &ItemState{Seen: 2, Correct: 1, Wrong: 1, LastSeen: &now}
	want.History = []HistoryEntry{{ID: "m8", Subject: "math", Topic: key, Correct: true, Timestamp: now}}

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 777, got.Topics[key].Rating)
	assert.True(t, got.Topics[key].Last.Equal(now))
	assert.Equal(t, 2, got.Items["m8"].Seen)
	require.Len(t, got.History, 1)
	assert.Equal(t, key, got.History[0].Topic)

	require.NoError(t, repo.Clear(ctx))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestModelRepo_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlob()
	require.NoError(t, blob.Set(ctx, DefaultModelKey, []byte("{not json")))

	_, err := NewModelRepo(blob, "").Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptModel)
}

func TestDecodeModel_FillsMissingMaps(t *testing.T) {
	m, err := DecodeModel([]byte(`{"history":[{"id":"x","topic":"","correct":false}]}`))
	require.NoError(t, err)
	assert.NotNil(t, m.Topics)
	assert.NotNil(t, m.Items)
	assert.Equal(t, ModelVersion, m.Version)
	assert.True(t, m.History[0].Topic.IsZero())
}

func TestModelClone_IsDeep(t *testing.T) {
	now := time.Now()
	key := catalog.NewTopicKey("vocab", "tone")
	m := NewModel()
	m.Topics[key] = &TopicState{Rating: 800, Last: &now}
	m.History = append(m.History, HistoryEntry{ID: "a"})

	c := m.Clone()
	c.Topics[key].Rating = 400
	*c.Topics[key].Last = now.Add(time.Hour)
	c.History[0].ID = "b"

	assert.Equal(t, 800, m.Topics[key].Rating)
	assert.True(t, m.Topics[key].Last.Equal(now))
	assert.Equal(t, "a", m.History[0].ID)
}
