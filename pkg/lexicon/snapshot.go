package lexicon

import (
	"fmt"

	"github.com/bastiangx/teny/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the persisted form: entries sorted by word.
type snapshot struct {
	Version int     `msgpack:"v"`
	Entries []Entry `msgpack:"e"`
}

const snapshotVersion = 1

// Encode serializes the lexicon with msgpack.
func (l *Lexicon) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(snapshot{Version: snapshotVersion, Entries: l.Entries()})
	if err != nil {
		return nil, fmt.Errorf("encode lexicon: %w", err)
	}
	return data, nil
}

// Decode merges an encoded snapshot into l and returns the entry count.
func (l *Lexicon) Decode(data []byte) (int, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return 0, fmt.Errorf("decode lexicon: %w", err)
	}
	if snap.Version != snapshotVersion {
		return 0, fmt.Errorf("decode lexicon: unsupported snapshot version %d", snap.Version)
	}
	for _, e := range snap.Entries {
		l.Add(e.Word, e.Definition)
	}
	return len(snap.Entries), nil
}

// Save writes the lexicon snapshot into s under key.
func (l *Lexicon) Save(s *store.Store, key string) error {
	data, err := l.Encode()
	if err != nil {
		return err
	}
	return s.Put(store.BucketLexicon, key, data)
}

// LoadSnapshot merges the snapshot stored under key. A missing snapshot loads nothing.
func (l *Lexicon) LoadSnapshot(s *store.Store, key string) (int, error) {
	data, err := s.Get(store.BucketLexicon, key)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	return l.Decode(data)
}

// LoadSnapshotFile opens the bbolt database at path and merges its default snapshot.
func (l *Lexicon) LoadSnapshotFile(path string) (int, error) {
	s, err := store.Open(path)
	if err != nil {
		return 0, err
	}
	defer s.Close()
	return l.LoadSnapshot(s, store.DefaultKey)
}
