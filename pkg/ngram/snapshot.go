package ngram

import (
	"errors"
	"fmt"
	"os"

	"github.com/bastiangx/teny/internal/store"
	"github.com/bastiangx/teny/internal/utils"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrNoModel = errors.New("no model snapshot")

const snapshotVersion = 1

// snapshot lists every table in first-appearance order, so a decoded model ranks ties
// exactly like the one that was encoded.
type snapshot struct {
	Version     int          `msgpack:"v"`
	Order       int          `msgpack:"n"`
	Unigrams    []Count      `msgpack:"u"`
	Transitions []transition `msgpack:"t"`
}

type transition struct {
	Context []string `msgpack:"c"`
	Next    []Count  `msgpack:"x"`
}

// Encode serializes the model with msgpack.
func (m *Model) Encode() ([]byte, error) {
	m.mu.RLock()
	snap := snapshot{
		Version:     snapshotVersion,
		Order:       m.order,
		Unigrams:    m.unigrams.entries(),
		Transitions: make([]transition, len(m.contexts)),
	}
	for i, ctx := range m.contexts {
		snap.Transitions[i] = transition{
			Context: ctx,
			Next:    m.follower(ctx).entries(),
		}
	}
	m.mu.RUnlock()

	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	return data, nil
}

// Decode rebuilds a model from Encode output.
func Decode(data []byte) (*Model, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("decode model: unsupported snapshot version %d", snap.Version)
	}
	m, err := New(snap.Order)
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	for _, u := range snap.Unigrams {
		m.addUnigram(u.Word, u.Count)
	}
	for _, t := range snap.Transitions {
		if len(t.Context) != m.order-1 {
			return nil, fmt.Errorf("decode model: context %q has %d tokens, want %d", t.Context, len(t.Context), m.order-1)
		}
		for _, n := range t.Next {
			m.addTransition(t.Context, n.Word, n.Count)
		}
	}
	return m, nil
}

// Save writes the model into s under key.
func (m *Model) Save(s *store.Store, key string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return s.Put(store.BucketModel, key, data)
}

// Load reads the model stored under key. A missing key returns ErrNoModel.
func Load(s *store.Store, key string) (*Model, error) {
	data, err := s.Get(store.BucketModel, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNoModel
	}
	return Decode(data)
}

// SaveFile writes the encoded model to path, creating its directory and replacing
// any previous file in one rename.
func (m *Model) SaveFile(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// LoadFile reads a model written by SaveFile. A missing file returns ErrNoModel.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoModel
	}
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return Decode(data)
}
