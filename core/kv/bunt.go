package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

// Bunt stores values in a buntdb file. Use ":memory:" for a volatile store.
type Bunt struct {
	db *buntdb.DB
}

func OpenBunt(path string) (*Bunt, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kv: open bunt at %s: %w", path, err)
	}
	return &Bunt{db: db}, nil
}

func (b *Bunt) Get(ctx context.Context, key string) (value string, err error) {
	err = b.db.View(func(tx *buntdb.Tx) error {
		value, err = tx.Get(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", ErrNotFound
	}
	return
}

func (b *Bunt) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, nil)
		return err
	})
}

func (b *Bunt) Close() error {
	return b.db.Close()
}
