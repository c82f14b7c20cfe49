package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teny.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestPutGet(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Put(BucketModel, DefaultKey, []byte{0x01, 0x02}))
	got, err := s.Get(BucketModel, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, got)
}

func TestGetMissingReturnsNil(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Get(BucketLexicon, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPutNilRejected(t *testing.T) {
	s, _ := newTestStore(t)
	assert.ErrorIs(t, s.Put(BucketModel, DefaultKey, nil), ErrNilSnapshot)
}

func TestSurvivesReopen(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.Put(BucketLexicon, DefaultKey, []byte("snapshot")))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(BucketLexicon, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "snapshot", string(got))
}

func TestKeysAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Put(BucketModel, "bigram", []byte("a")))
	require.NoError(t, s.Put(BucketModel, "trigram", []byte("b")))

	keys, err := s.Keys(BucketModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"bigram", "trigram"}, keys)

	require.NoError(t, s.Delete(BucketModel, "bigram"))
	require.NoError(t, s.Delete(BucketModel, "missing"))
	keys, err = s.Keys(BucketModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"trigram"}, keys)

	empty, err := s.Keys("unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "models", "teny.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(BucketLexicon, DefaultKey, []byte("x")))
	assert.Equal(t, path, s.Path())
}
