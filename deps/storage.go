package deps

import (
	"context"

	"github.com/tryanzu/cart/core/kv"
	"github.com/tryanzu/cart/core/seed"
	"github.com/tryanzu/cart/modules/exceptions"
)

func IgniteReporter(ctx context.Context, container Deps) (Deps, error) {
	reporter, err := exceptions.NewReporter(container.Config().String("sentry.dsn"))
	if err != nil {
		return container, err
	}

	container.ReporterProvider = reporter
	return container, nil
}

func IgniteStorage(ctx context.Context, container Deps) (Deps, error) {
	c := container.Config()
	store, err := kv.Open(ctx, kv.Options{
		Driver:   c.String("storage.driver"),
		Path:     c.String("storage.path"),
		Address:  c.String("storage.address"),
		Password: c.String("storage.password"),
		DB:       c.Int("storage.db"),
	})
	if err != nil {
		return container, err
	}

	log.Infof("storage driver %s ready", c.String("storage.driver"))
	container.StorageProvider = store
	return container, nil
}

func IgniteSeed(ctx context.Context, container Deps) (Deps, error) {
	state, err := seed.Load(container.Config().String("cart.seed"))
	if err != nil {
		return container, err
	}

	container.SeedProvider = state
	return container, nil
}
