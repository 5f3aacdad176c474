package deps

import (
	"github.com/op/go-logging"
	"github.com/tryanzu/cart/core/config"
	"github.com/tryanzu/cart/core/kv"
	"github.com/tryanzu/cart/modules/bridge"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/exceptions"
)

// Deps holds the bootstrapped services. It is built once by Bootstrap and
// passed down explicitly.
type Deps struct {
	ConfigFile string

	ConfigProvider   *config.Config
	LoggerProvider   *logging.Logger
	StorageProvider  kv.Store
	ReporterProvider *exceptions.Reporter
	SeedProvider     cart.State
	BridgeProvider   *bridge.Bridge
	CartProvider     *cart.Cart
}

func (d Deps) Config() *config.Config {
	return d.ConfigProvider
}

func (d Deps) Log() *logging.Logger {
	return d.LoggerProvider
}

func (d Deps) Storage() kv.Store {
	return d.StorageProvider
}

func (d Deps) Reporter() *exceptions.Reporter {
	return d.ReporterProvider
}

func (d Deps) Bridge() *bridge.Bridge {
	return d.BridgeProvider
}

func (d Deps) Cart() *cart.Cart {
	return d.CartProvider
}
