package storage

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pawshop", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := openTemp(t)

	in := snapshot{Token: "jwt", Name: "Test User", Count: 3}
	require.NoError(t, s.Put(KeyAuth, in))

	var out snapshot
	ok, err := s.Get(KeyAuth, &out)
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_MissingKey(t *testing.T) {
	s := openTemp(t)

	var out snapshot
	ok, err := s.Get("never-written", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPut_ReplacesPriorValue(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.Put(KeyCart, snapshot{Count: 1}))
	require.NoError(t, s.Put(KeyCart, snapshot{Count: 2}))

	var out snapshot
	ok, err := s.Get(KeyCart, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, out.Count)
}

func TestDelete_Idempotent(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.Put(KeyAuth, snapshot{Token: "x"}))
	require.NoError(t, s.Delete(KeyAuth))
	require.NoError(t, s.Delete(KeyAuth))

	var out snapshot
	ok, err := s.Get(KeyAuth, &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(KeyAuth, snapshot{Token: "persisted"}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	var out snapshot
	ok, err := s2.Get(KeyAuth, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", out.Token)
}

func TestGet_DiscardsMismatchedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	// Write a blob under a future schema version directly.
	blob, err := json.Marshal(envelope{Version: SchemaVersion + 1, Data: json.RawMessage(`{"token":"future"}`)})
	require.NoError(t, err)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)`,
		KeyAuth, string(blob), time.Now().UnixMilli())
	require.NoError(t, err)

	var out snapshot
	ok, err := s.Get(KeyAuth, &out)
	require.NoError(t, err)
	assert.False(t, ok, "mismatched version must read as absent")
	assert.Empty(t, out.Token)
}
