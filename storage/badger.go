package storage

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
)

// DBStore is a persistent Store backed by BadgerDB. One instance exists per
// data directory; the agent's four ledger collections all live in it.
type DBStore struct {
	db     *badger.DB
	mu     sync.Mutex
	config BadgerConfig
}

var (
	// Map of dataDir -> DBStore
	instances = make(map[string]*DBStore)
	mu        sync.RWMutex
)

// GetDBStore returns the Store instance for the given data directory.
func GetDBStore(dataDir string) (*DBStore, error) {
	return GetDBStoreWithConfig(DefaultConfig(dataDir))
}

// GetDBStoreWithConfig returns a Store instance with custom configuration.
func GetDBStoreWithConfig(config BadgerConfig) (*DBStore, error) {
	mu.RLock()
	instance, exists := instances[config.DataDir]
	mu.RUnlock()

	if exists {
		return instance, nil
	}

	mu.Lock()
	defer mu.Unlock()

	// Check again in case another goroutine created it while we were waiting
	instance, exists = instances[config.DataDir]
	if exists {
		return instance, nil
	}

	dbPath := filepath.Join(config.DataDir, "badgerdb")
	opts := badger.DefaultOptions(dbPath)
	if config.DisableLogging {
		opts.Logger = nil
	}
	opts.InMemory = config.InMemory
	opts.SyncWrites = config.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %v", err)
	}

	instance = &DBStore{db: db, config: config}
	instances[config.DataDir] = instance

	if config.GCInterval > 0 {
		go instance.startGCRoutine(time.Duration(config.GCInterval) * time.Second)
	}

	return instance, nil
}

func (s *DBStore) startGCRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		// Clean up if at least 50% can be discarded
		if err := s.db.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
			log.Printf("BadgerDB GC failed: %v", err)
		}
	}
}

// Read retrieves the stored values for the given keys. Missing keys are
// omitted; only a store-level failure returns an error.
func (s *DBStore) Read(keys []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]string)
	err := s.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[key] = string(val)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read keys: %v", err)
	}

	return result, nil
}

// Write persists all given key-value pairs in a single transaction.
func (s *DBStore) Write(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		for key, value := range values {
			if err := txn.Set([]byte(key), []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the BadgerDB database.
func (s *DBStore) Close() error {
	mu.Lock()
	defer mu.Unlock()

	delete(instances, s.config.DataDir)
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CloseAll closes all open BadgerDB instances.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()

	for _, instance := range instances {
		if instance.db != nil {
			instance.db.Close()
		}
	}
	instances = make(map[string]*DBStore)
}
