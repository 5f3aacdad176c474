package deps

import (
	"context"
	"time"

	"github.com/tryanzu/cart/modules/bridge"
	"github.com/tryanzu/cart/modules/cart"
)

// IgniteCart starts the persistence bridge and boots the cart through it.
func IgniteCart(ctx context.Context, container Deps) (Deps, error) {
	c := container.Config()
	b := bridge.New(container.Storage(), bridge.Options{
		Key:          c.String("storage.key"),
		Seed:         container.SeedProvider,
		WriteTimeout: c.Duration("storage.timeout", 5*time.Second),
		Reporter:     container.Reporter(),
	})
	container.BridgeProvider = b

	booted, err := cart.Boot(ctx, b)
	if err != nil {
		return container, err
	}

	container.CartProvider = booted
	return container, nil
}
