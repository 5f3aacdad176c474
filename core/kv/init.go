// Package kv holds the key-value backends the cart snapshot is mirrored to.
//
// Every driver exposes the same overwrite-only contract: a value is read or
// replaced as a whole under a single key. Drivers are selected by name through
// Open so the rest of the program never imports a storage library directly.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("kv")

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the storage contract consumed by the persistence bridge.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Options selects and configures a driver.
type Options struct {
	Driver   string
	Path     string
	Address  string
	Password string
	DB       int
}

// Open dials the configured driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	log.Debugf("opening kv driver=%s path=%s address=%s", driver, opts.Path, opts.Address)

	var (
		store Store
		err   error
	)
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "ledis":
		store, err = OpenLedis(opts.Path)
	case "bunt":
		store, err = OpenBunt(opts.Path)
	case "redis":
		store, err = OpenRedis(ctx, opts.Address, opts.Password, opts.DB)
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", opts.Driver)
	}

	// A failed open must not leak a typed nil through the interface.
	if err != nil {
		return nil, err
	}
	return store, nil
}
