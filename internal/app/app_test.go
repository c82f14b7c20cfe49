package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bastiangx/teny/internal/store"
	"github.com/bastiangx/teny/pkg/checker"
	"github.com/bastiangx/teny/pkg/config"
	"github.com/bastiangx/teny/pkg/ngram"
	"github.com/bastiangx/teny/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordKnown(t *testing.T, h *server.Handler, word string) bool {
	t.Helper()
	out, err := h.Handle(server.Request{Op: server.OpWord, Word: word})
	require.NoError(t, err)
	return out.(checker.WordInfo).Exists
}

func TestCheckerOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Checker.Threshold = 80
	cfg.Checker.SuggestionLimit = 0
	cfg.Server.MinPrefix = 3

	opts := CheckerOptions(cfg)
	assert.Equal(t, 80.0, opts.Threshold)
	assert.Equal(t, checker.DefaultOptions().Limit, opts.Limit)
	assert.Equal(t, 3, opts.MinPrefix)
	assert.Equal(t, 3, opts.DictAlternatives)
	assert.Equal(t, 10000, opts.CacheSize)
}

func TestLoadModelSources(t *testing.T) {
	dir := t.TempDir()
	seeded, err := ngram.NewSeeded(3)
	require.NoError(t, err)

	file := filepath.Join(dir, "model.msgpack")
	require.NoError(t, seeded.SaveFile(file))

	dbPath := filepath.Join(dir, "teny.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, seeded.Save(s, store.DefaultKey))
	require.NoError(t, s.Close())

	garbage := filepath.Join(dir, "garbage.msgpack")
	require.NoError(t, os.WriteFile(garbage, []byte("nope"), 0644))

	testCases := []struct {
		cfg         config.ModelConfig
		order       int
		isNil       bool
		wantErr     bool
		description string
	}{
		{config.ModelConfig{SnapshotPath: file}, 3, false, false, "snapshot file"},
		{config.ModelConfig{SnapshotPath: filepath.Join(dir, "missing"), DBPath: dbPath}, 3, false, false, "falls through to the database"},
		{config.ModelConfig{Order: 2, TrainSeed: true}, 2, false, false, "seed corpus"},
		{config.ModelConfig{}, 0, true, false, "nothing configured"},
		{config.ModelConfig{SnapshotPath: garbage}, 0, true, true, "corrupt snapshot"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			m, err := LoadModel(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.isNil {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, tc.order, m.Order())
		})
	}
}

func TestLoadLexiconSkipsUnreachableRedis(t *testing.T) {
	lex, err := LoadLexicon(context.Background(), config.LexiconConfig{RedisAddr: "127.0.0.1:1"})
	require.NoError(t, err)
	assert.True(t, lex.Contains("tsara"))
}

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	words := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("zanzibar\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Lexicon.WordListPath = words
	cfg.Model.TrainSeed = false
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, words
}

func TestNewAndReload(t *testing.T) {
	a, words := newTestApp(t)
	assert.Nil(t, a.Model)
	assert.True(t, wordKnown(t, a.Handler, "zanzibar"))
	assert.False(t, wordKnown(t, a.Handler, "antananarivo"))

	require.NoError(t, os.WriteFile(words, []byte("zanzibar\nantananarivo\n"), 0644))
	require.NoError(t, a.Reload(context.Background()))
	assert.True(t, wordKnown(t, a.Handler, "antananarivo"))
}

func TestReloadKeepsCheckerOnError(t *testing.T) {
	a, _ := newTestApp(t)
	before := a.Handler.Checker()

	a.Config.Lexicon.DefinitionsPath = filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(a.Config.Lexicon.DefinitionsPath, []byte("{not json"), 0644))

	assert.Error(t, a.Reload(context.Background()))
	assert.Same(t, before, a.Handler.Checker())
}

func TestWatchSwapsChecker(t *testing.T) {
	a, words := newTestApp(t)
	require.NoError(t, a.Watch(context.Background(), 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(words, []byte("zanzibar\nmorondava\n"), 0644))
	assert.Eventually(t, func() bool {
		return a.Handler.Checker().Lexicon().Contains("morondava")
	}, 2*time.Second, 20*time.Millisecond)
}
