package config

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hjson/hjson-go"
	"github.com/imdario/mergo"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("config")

// defaults are the values every key falls back to.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level": "info",
		},
		"storage": map[string]interface{}{
			"driver":   "ledis",
			"path":     "./data/cart",
			"address":  "127.0.0.1:6379",
			"password": "",
			"db":       0,
			"key":      "@items",
			"timeout":  "5s",
		},
		"cart": map[string]interface{}{
			"seed":     "",
			"currency": "USD",
		},
		"http": map[string]interface{}{
			"address": ":3200",
		},
		"sentry": map[string]interface{}{
			"dsn": "",
		},
	}
}

// Config is the runtime configuration: defaults, overridden by the hjson
// file, overridden by environment variables (storage.driver => STORAGE_DRIVER).
type Config struct {
	// Reload receives a signal every time the file is merged again.
	Reload chan struct{}

	file    string
	mu      sync.RWMutex
	current *config.Config
}

// Load merges file over the defaults. A missing file is not an error.
func Load(file string) (*Config, error) {
	c := &Config{
		Reload: make(chan struct{}, 1),
		file:   file,
	}
	if err := c.Merge(); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge rebuilds the configuration from scratch.
func (c *Config) Merge() error {
	loaded := map[string]interface{}{}

	dat, err := ioutil.ReadFile(c.file)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debugf("no config file at %s, using defaults", c.file)
	case err != nil:
		return fmt.Errorf("config: read %s: %w", c.file, err)
	default:
		if err := hjson.Unmarshal(dat, &loaded); err != nil {
			return fmt.Errorf("config: parse %s: %w", c.file, err)
		}
	}

	if err := mergo.Merge(&loaded, defaults()); err != nil {
		return fmt.Errorf("config: merge defaults: %w", err)
	}

	merged := (&config.Config{Root: loaded}).Env()

	c.mu.Lock()
	c.current = merged
	c.mu.Unlock()

	// Reload signal if anyone is listening...
	select {
	case c.Reload <- struct{}{}:
	default:
	}
	return nil
}

// Current returns the active configuration tree.
func (c *Config) Current() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Config) String(path string) string {
	return c.Current().UString(path)
}

func (c *Config) Int(path string) int {
	return c.Current().UInt(path)
}

// Duration parses values such as "5s". Invalid values yield fallback.
func (c *Config) Duration(path string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(c.String(path))
	if err != nil {
		return fallback
	}
	return d
}

// Watch merges the file again whenever it is written, until ctx is done.
func (c *Config) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(c.file); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					log.Infof("modified file: %s", event.Name)
					if err := c.Merge(); err != nil {
						log.Errorf("reload failed, keeping previous config: %v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warningf("watch error: %v", err)
			}
		}
	}()
	return nil
}
