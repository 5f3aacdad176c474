package kv

import (
	"context"
	"fmt"

	lediscfg "github.com/siddontang/ledisdb/config"
	"github.com/siddontang/ledisdb/ledis"
)

// Ledis stores values in an embedded ledisdb instance (database 0).
type Ledis struct {
	conn *ledis.Ledis
	db   *ledis.DB
}

// OpenLedis opens (or creates) a ledisdb data directory.
func OpenLedis(dir string) (*Ledis, error) {
	conf := lediscfg.NewConfigDefault()
	if dir != "" {
		conf.DataDir = dir
	}

	conn, err := ledis.Open(conf)
	if err != nil {
		return nil, fmt.Errorf("kv: open ledis at %s: %w", conf.DataDir, err)
	}

	db, err := conn.Select(0)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("kv: select ledis db: %w", err)
	}

	return &Ledis{conn: conn, db: db}, nil
}

func (l *Ledis) Get(ctx context.Context, key string) (string, error) {
	v, err := l.db.Get([]byte(key))
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", ErrNotFound
	}
	return string(v), nil
}

func (l *Ledis) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.db.Set([]byte(key), []byte(value))
}

func (l *Ledis) Close() error {
	l.conn.Close()
	return nil
}
