package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input       string
		valid       bool
		description string
	}{
		{"tsara", true, "plain word"},
		{"amin'ny", true, "apostrophe inside a word"},
		{"an-tsena", true, "hyphenated word"},
		{"amin’ny", true, "typographic apostrophe"},
		{"aaa", true, "triple vowel still checked"},
		{"aaaa", false, "four identical runes"},
		{"AaAa", false, "repetition ignores case"},
		{"1234", false, "digits only"},
		{"mpianatra2", true, "digits mixed with letters"},
		{"hello@x", false, "special character"},
		{"", false, "empty"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidInput(tc.input))
		})
	}
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "tsara", CleanToken("Tsara!", TokenPunct))
	assert.Equal(t, "'tsara'", CleanToken("'Tsara'.", RulePunct))
	assert.Equal(t, "salama É", ASCIILower("SALAMA É"))
	assert.Equal(t, "mpianatra", WordAt("ny mpianatra dia", 5))
	assert.Equal(t, "", WordAt("abc", 10))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "ab", Truncate("ab", 2))
	assert.Equal(t, 3, RuneLen("éto"))
}

func TestCharOffsets(t *testing.T) {
	text := "Tsy nahità nbiana"
	testCases := []struct {
		sub         string
		expected    int
		description string
	}{
		{"Tsy", 0, "start"},
		{"nahità", 4, "ascii prefix"},
		{"nbiana", 11, "after an accented letter"},
		{"zzz", -1, "missing"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, IndexChar(text, tc.sub))
		})
	}
	assert.Equal(t, 3, CharOffset("àb c", 4))
	assert.Equal(t, 4, CharOffset("àb c", 99))
}

func TestExtractors(t *testing.T) {
	data := map[string]any{
		"limit":     int64(7),
		"debug":     true,
		"threshold": int64(70),
		"ratio":     0.5,
		"name":      "teny",
		"origins":   []any{"http://a", "http://b"},
		"mixed":     []any{"http://a", int64(3)},
		"section":   map[string]any{"x": int64(1)},
	}

	n, ok := ExtractInt64(data, "limit")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = ExtractInt64(data, "name")
	assert.False(t, ok)

	b, ok := ExtractBool(data, "debug")
	assert.True(t, ok)
	assert.True(t, b)

	f, ok := ExtractFloat64(data, "threshold")
	assert.True(t, ok)
	assert.Equal(t, 70.0, f)
	f, ok = ExtractFloat64(data, "ratio")
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)

	s, ok := ExtractString(data, "name")
	assert.True(t, ok)
	assert.Equal(t, "teny", s)

	list, ok := ExtractStrings(data, "origins")
	assert.True(t, ok)
	assert.Equal(t, []string{"http://a", "http://b"}, list)
	_, ok = ExtractStrings(data, "mixed")
	assert.False(t, ok)

	sec, ok := ExtractSection(data, "section")
	assert.True(t, ok)
	assert.Equal(t, int64(1), sec["x"])
	_, ok = ExtractSection(data, "name")
	assert.False(t, ok)
}

func TestParseTOMLWithRecovery(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[server]\nmax_limit = 9\n"), 0644))
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server\n"), 0644))

	data, err := ParseTOMLWithRecovery(good)
	require.NoError(t, err)
	sec, ok := ExtractSection(data, "server")
	require.True(t, ok)
	n, _ := ExtractInt64(sec, "max_limit")
	assert.Equal(t, 9, n)

	_, err = ParseTOMLWithRecovery(bad)
	assert.Error(t, err)
	_, err = ParseTOMLWithRecovery(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestDataFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"words.txt", "defs.json", "teny.db", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	files := DataFiles(dir)
	assert.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "defs.json"), files[0])
	assert.True(t, IsDataDir(dir))

	assert.False(t, IsDataDir(t.TempDir()))
	assert.Nil(t, DataFiles(filepath.Join(dir, "words.txt")))
}

func TestResolveFile(t *testing.T) {
	pr, err := NewPathResolver()
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "words.txt")
	assert.Equal(t, abs, pr.ResolveFile(abs))
	assert.Equal(t, "", pr.ResolveFile(""))
	assert.Equal(t, "no/such/file.txt", pr.ResolveFile("no/such/file.txt"))

	info := pr.GetRuntimeInfo()
	assert.Equal(t, pr.GetExecutableDir(), info["executable_dir"])
	assert.Equal(t, pr.GetConfigDir(), info["config_dir"])
}

func TestFindFileInPaths(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(b, "corpus.txt"), nil, 0644))

	found, err := FindFileInPaths("corpus.txt", []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(b, "corpus.txt"), found)

	_, err = FindFileInPaths("corpus.txt", []string{a})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "teny")
	assert.True(t, WritableDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.False(t, IsFile(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file removed")
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "model.msgpack")
	require.NoError(t, WriteFileAtomic(path, []byte("v1")))
	require.NoError(t, WriteFileAtomic(path, []byte("v2")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
	assert.True(t, IsFile(path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSaveTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	require.NoError(t, SaveTOMLFile(map[string]any{"server": map[string]any{"max_limit": 9}}, path))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(data, "server")
	require.True(t, ok)
	n, _ := ExtractInt64(sec, "max_limit")
	assert.Equal(t, 9, n)
}

func TestAbsPath(t *testing.T) {
	assert.Equal(t, "unknown", AbsPath(""))
	assert.True(t, filepath.IsAbs(AbsPath("config.toml")))
}
