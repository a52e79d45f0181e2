package repositories

import (
	"context"
	"fmt"

	"blogengine/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user. Storing a name twice overwrites; uniqueness is
// checked by the caller.
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := marshalEntity(user)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.UserName), data)
	})
}

// GetByUserName retrieves a user by exact name
func (r *BadgerUserRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(userName))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Count returns the number of registered users
func (r *BadgerUserRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
