// Package store keeps lexicon and model snapshots in an embedded bbolt database.
// Each snapshot kind lives in its own bucket; values are opaque byte blobs
// produced by the owning package's codec. Writes are transactional.
package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bastiangx/teny/internal/utils"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
const (
	BucketLexicon = "lexicon"
	BucketModel   = "model"
)

// DefaultKey is the key used when a bucket holds a single snapshot.
const DefaultKey = "default"

var ErrNilSnapshot = errors.New("nil snapshot")

// Store wraps a bbolt database.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens (or creates) a bbolt database at path.
func Open(path string) (*Store, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes data under bucket/key, replacing any previous value.
func (s *Store) Put(bucket, key string, data []byte) error {
	if data == nil {
		return ErrNilSnapshot
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

// Get reads bucket/key.
// Returns nil, nil when nothing was stored.
func (s *Store) Get(bucket, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		// bbolt slices are only valid inside the transaction
		if v := b.Get([]byte(key)); v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes bucket/key. Missing keys are not an error.
func (s *Store) Delete(bucket, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Keys lists the keys of bucket in sorted order.
func (s *Store) Keys(bucket string) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
