package repositories

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Repository owns an open Badger database and hands out the entity
// repositories that share it.
type Repository struct {
	db       *badger.DB
	mutex    sync.RWMutex
	dbPath   string
	isTestDB bool
}

// NewRepository opens the Badger database at path. An empty path opens a
// throwaway database in a temporary directory that Close removes again.
func NewRepository(path string) (*Repository, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "blogengine_db_")
		if err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &Repository{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
	}, nil
}

// Users returns the user repository backed by this database.
func (r *Repository) Users() *BadgerUserRepository {
	return NewBadgerUserRepository(r.db)
}

// Posts returns the post repository backed by this database.
func (r *Repository) Posts() *BadgerPostRepository {
	return NewBadgerPostRepository(r.db)
}

// Path is the directory the database lives in.
func (r *Repository) Path() string {
	return r.dbPath
}

// Backup streams a full backup of the database to w.
func (r *Repository) Backup(w io.Writer) (uint64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.db.Backup(w, 0)
}

// Load restores a backup produced by Backup.
func (r *Repository) Load(rd io.Reader) (err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// badger panics on some malformed backups instead of returning an error
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic occurred during restore: %v", p)
		}
	}()
	return r.db.Load(rd, 4)
}

func (r *Repository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	err := r.db.Close()
	if err != nil {
		return err
	}

	if r.isTestDB {
		if err := os.RemoveAll(r.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup temporary database: %w", err)
		}
	}
	return nil
}
