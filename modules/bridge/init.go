// Package bridge mirrors the cart to a key-value store.
//
// Restores happen once at boot. Saves are fire-and-forget: the snapshot is
// encoded at the time of the call, parked as the pending write and picked up
// by a single writer goroutine. A newer snapshot replaces an older one that
// has not been written yet, and writes never go backwards in sequence, so the
// stored value always ends up being the last snapshot handed to Save.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"
	"github.com/tryanzu/cart/core/kv"
	"github.com/tryanzu/cart/modules/cart"
)

var log = logging.MustGetLogger("bridge")

// DefaultKey is where the cart snapshot lives.
const DefaultKey = "@items"

const defaultWriteTimeout = 5 * time.Second

// Reporter receives persistence failures.
type Reporter interface {
	Report(err error, tags map[string]string)
}

type Options struct {
	Key          string
	Seed         cart.State
	WriteTimeout time.Duration
	Reporter     Reporter
}

type snapshot struct {
	seq     uint64
	payload string
}

// Bridge implements cart.Bucket on top of a kv.Store.
type Bridge struct {
	store   kv.Store
	key     string
	seed    cart.State
	timeout time.Duration
	report  Reporter

	mu      sync.Mutex
	seq     uint64
	pending *snapshot

	// wmu serializes writes; written is guarded by it.
	wmu     sync.Mutex
	written uint64

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// New starts the writer goroutine. Close stops it.
func New(store kv.Store, opts Options) *Bridge {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}

	b := &Bridge{
		store:   store,
		key:     opts.Key,
		seed:    opts.Seed.Clone(),
		timeout: opts.WriteTimeout,
		report:  opts.Reporter,
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go b.writer()
	return b
}

// Key the snapshot is stored under.
func (b *Bridge) Key() string {
	return b.key
}

// Restore reads the stored snapshot. A read failure counts as an absent
// snapshot; absent, blank or empty snapshots yield the seed.
func (b *Bridge) Restore(ctx context.Context) (cart.State, error) {
	raw, err := b.store.Get(ctx, b.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Warningf("reading %s failed, treating it as absent: %v", b.key, err)
		}
		return b.seed.Clone(), nil
	}

	if strings.TrimSpace(raw) == "" {
		return b.seed.Clone(), nil
	}

	state, err := Decode(raw)
	if err != nil {
		corrupt := &cart.DeserializationError{Key: b.key, Err: err}
		b.fail(corrupt, "restore")
		return nil, corrupt
	}
	if len(state) == 0 {
		return b.seed.Clone(), nil
	}
	return state, nil
}

// Save parks a snapshot of state for the writer and returns immediately.
func (b *Bridge) Save(state cart.State) {
	payload, err := Encode(state)
	if err != nil {
		b.fail(err, "encode")
		return
	}

	b.mu.Lock()
	b.seq++
	b.pending = &snapshot{seq: b.seq, payload: payload}
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Flush writes the pending snapshot, if any, and waits for any write in
// flight to finish. A snapshot whose background write failed is still
// pending, so Flush retries it and returns the error if it fails again.
func (b *Bridge) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.write(ctx)
}

// Close flushes what is left and stops the writer. The store is not closed.
func (b *Bridge) Close() error {
	b.once.Do(func() {
		close(b.quit)
	})
	<-b.done
	return nil
}

func (b *Bridge) writer() {
	defer close(b.done)
	for {
		select {
		case <-b.wake:
			b.write(context.Background())
		case <-b.quit:
			b.write(context.Background())
			return
		}
	}
}

func (b *Bridge) write(parent context.Context) (err error) {
	b.wmu.Lock()
	defer b.wmu.Unlock()

	var next *snapshot
	defer func() {
		if r := recover(); r != nil {
			if next != nil {
				b.requeue(next)
			}
			err = panicError(r)
			b.fail(err, "panic")
		}
	}()

	b.mu.Lock()
	next = b.pending
	b.pending = nil
	b.mu.Unlock()

	if next == nil || next.seq <= b.written {
		return nil
	}

	ctx, cancel := context.WithTimeout(parent, b.timeout)
	defer cancel()

	if err = b.store.Set(ctx, b.key, next.payload); err != nil {
		b.requeue(next)
		b.fail(err, "set")
		return err
	}

	b.written = next.seq
	log.Debugf("snapshot %d written to %s (%d bytes)", next.seq, b.key, len(next.payload))
	return nil
}

// requeue parks a snapshot whose write failed so the next write or Flush
// retries it, unless a newer one was saved in the meantime.
func (b *Bridge) requeue(s *snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil || b.pending.seq < s.seq {
		b.pending = s
	}
}

func (b *Bridge) fail(err error, stage string) {
	log.Errorf("%s failed at %s: %v", b.key, stage, err)
	if b.report != nil {
		b.report.Report(err, map[string]string{"key": b.key, "stage": stage})
	}
}

// Encode serializes a state to the stored JSON form.
func Encode(state cart.State) (string, error) {
	if state == nil {
		state = cart.State{}
	}
	encoded, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Decode parses the stored JSON form and checks the cart invariants.
func Decode(raw string) (cart.State, error) {
	var state cart.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if state == nil {
		state = cart.State{}
	}
	return state, nil
}
