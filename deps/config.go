package deps

import (
	"context"

	"github.com/tryanzu/cart/core/config"
)

func IgniteConfig(ctx context.Context, container Deps) (Deps, error) {
	if container.ConfigFile == "" {
		container.ConfigFile = "./config.hjson"
	}

	c, err := config.Load(container.ConfigFile)
	if err != nil {
		return container, err
	}

	container.ConfigProvider = c
	return container, nil
}
