package deps

import (
	"context"
)

// An ignitor takes a container and injects bootstrapped dependencies.
type Ignitor func(context.Context, Deps) (Deps, error)

// Bootstrap runs ignitors in order and returns the filled container. On
// failure whatever was already opened is released.
func Bootstrap(ctx context.Context, file string, ignitors ...Ignitor) (container Deps, err error) {
	if len(ignitors) == 0 {
		ignitors = []Ignitor{
			IgniteConfig,
			IgniteLogger,
			IgniteReporter,
			IgniteStorage,
			IgniteSeed,
			IgniteCart,
		}
	}

	container = Deps{ConfigFile: file}
	for _, fn := range ignitors {
		container, err = fn(ctx, container)
		if err != nil {
			container.Close()
			return Deps{}, err
		}
	}
	return container, nil
}

// Close flushes the pending snapshot and releases the storage.
func (d Deps) Close() error {
	if d.BridgeProvider != nil {
		d.BridgeProvider.Close()
	}
	if d.StorageProvider != nil {
		return d.StorageProvider.Close()
	}
	return nil
}
