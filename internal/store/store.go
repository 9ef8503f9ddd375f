package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketState = []byte("state")
)

// snapshotKey is the single record holding both lists
const snapshotKey = "movieAppState"

// dbFile is the bbolt file created inside the data directory
const dbFile = "marquee.db"

// SnapshotStore implements domain.SnapshotRepository using BoltDB.
type SnapshotStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of written records; the only storage in memory-only mode
	cache map[string][]byte
}

// NewSnapshotStore opens (or creates) the store under dataDir.
// An empty dataDir gives a memory-only store that persists nothing to disk.
func NewSnapshotStore(dataDir string) (*SnapshotStore, error) {
	if dataDir == "" {
		return &SnapshotStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SnapshotStore{db: db, cache: make(map[string][]byte)}, nil
}

// Path returns the database file path, or "" in memory-only mode
func (s *SnapshotStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SnapshotStore) get(bucket []byte, key string) ([]byte, bool, error) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data, true, nil
}

func (s *SnapshotStore) put(bucket []byte, key string, data []byte) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	// Cache only after a durable write so a failed save is never read back
	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()
	return nil
}

func (s *SnapshotStore) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}

// === Snapshot ===

// Load reads the saved lists. It returns domain.ErrNoSnapshot when nothing
// has been saved and domain.ErrCorruptSnapshot when the record is unreadable.
func (s *SnapshotStore) Load() (domain.Snapshot, error) {
	data, ok, err := s.get(bucketState, snapshotKey)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	if !ok {
		return domain.Snapshot{}, domain.ErrNoSnapshot
	}
	return DecodeSnapshot(data)
}

// Save serializes both lists and overwrites the stored record
func (s *SnapshotStore) Save(snapshot domain.Snapshot) error {
	data, err := json.Marshal(normalize(snapshot))
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.put(bucketState, snapshotKey, data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Clear deletes the stored record; the next Load reports ErrNoSnapshot
func (s *SnapshotStore) Clear() error {
	return s.delete(bucketState, snapshotKey)
}

// DecodeSnapshot parses a JSON snapshot. Anything that is not an object of
// the expected shape is reported as domain.ErrCorruptSnapshot.
func DecodeSnapshot(data []byte) (domain.Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.Snapshot{}, fmt.Errorf("%w: not a JSON object", domain.ErrCorruptSnapshot)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return normalize(snap), nil
}

// IsAbsent reports whether err means "no usable prior state"
func IsAbsent(err error) bool {
	return errors.Is(err, domain.ErrNoSnapshot) || errors.Is(err, domain.ErrCorruptSnapshot)
}

// normalize replaces nil collections with empty ones so the encoded form
// is always {"movies": [...]}.
func normalize(snap domain.Snapshot) domain.Snapshot {
	if snap.Favorites.Movies == nil {
		snap.Favorites.Movies = []domain.MovieSummary{}
	}
	if snap.Watchlist.Movies == nil {
		snap.Watchlist.Movies = []domain.MovieSummary{}
	}
	return snap
}

var _ domain.SnapshotRepository = (*SnapshotStore)(nil)
