package service

import (
	"context"
	"fmt"

	"blogengine/app/repositories"
	"blogengine/app/repositories/memory"
	"blogengine/app/repositories/mongostore"
	"blogengine/config"
)

// store is an open backend with the repositories it serves.
type store struct {
	// location names where the data lives, for logs
	location string
	users    repositories.UserRepository
	posts    repositories.PostRepository
	close    func(ctx context.Context) error
}

// openStore connects the backend named by cfg.Driver.
func openStore(ctx context.Context, cfg config.StoreConf) (*store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		repo, err := repositories.NewRepository(cfg.Badger.Path)
		if err != nil {
			return nil, err
		}
		return &store{
			location: repo.Path(),
			users:    repo.Users(),
			posts:    repo.Posts(),
			close:    func(context.Context) error { return repo.Close() },
		}, nil
	case config.DriverMongo:
		s, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return &store{
			location: cfg.Mongo.Database,
			users:    s.Users(),
			posts:    s.Posts(),
			close:    s.Close,
		}, nil
	case config.DriverMemory:
		return &store{
			location: "memory",
			users:    memory.NewUserRepository(),
			posts:    memory.NewPostRepository(),
			close:    func(context.Context) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver '%s'", cfg.Driver)
	}
}
