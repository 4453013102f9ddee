package main

import (
	"context"

	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/storage"
)

// serviceOpener returns a movie service and the func that releases it.
type serviceOpener func(ctx context.Context) (movie.Service, func(), error)

type commandContext struct {
	open serviceOpener
}

func newCommandContext(open serviceOpener) *commandContext {
	return &commandContext{open: open}
}

func (c *commandContext) withService(ctx context.Context, fn func(movie.Service) error) error {
	svc, release, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(svc)
}

func openStoreService(ctx context.Context) (movie.Service, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	repo, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return movie.NewUsecase(repo), func() { _ = closeStore(context.Background()) }, nil
}
