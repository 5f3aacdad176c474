package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("cart")

// Cart owns the authoritative in-memory State. Build it with Boot and pass the
// pointer to whoever needs it.
type Cart struct {
	mu      sync.Mutex
	items   State
	storage Bucket
	booted  bool
}

// Boot restores the persisted cart through storage. A corrupt snapshot is
// logged and the cart starts empty; the stored value is left as is.
func Boot(ctx context.Context, storage Bucket) (*Cart, error) {
	if storage == nil {
		return nil, errors.New("cart: nil storage bucket")
	}

	restored, err := storage.Restore(ctx)
	if err != nil {
		var corrupt *DeserializationError
		if !errors.As(err, &corrupt) {
			return nil, err
		}
		log.Errorf("restore failed, starting with an empty cart: %v", err)
		restored = State{}
	}

	if err := restored.Validate(); err != nil {
		log.Errorf("restored cart breaks invariants, starting with an empty cart: %v", err)
		restored = State{}
	}

	log.Infof("cart booted with %d lines", len(restored))
	return &Cart{
		items:   restored.Clone(),
		storage: storage,
		booted:  true,
	}, nil
}

// Items returns the current cart.
func (module *Cart) Items() (State, error) {
	if !module.ready() {
		return nil, ErrUninitialized
	}

	module.mu.Lock()
	defer module.mu.Unlock()
	return module.items.Clone(), nil
}

// Add puts a product in the cart. A product already present is incremented and
// the rest of in is ignored.
func (module *Cart) Add(in AddInput) (State, error) {
	if !module.ready() {
		return nil, ErrUninitialized
	}

	module.mu.Lock()
	defer module.mu.Unlock()

	if in.ID == "" {
		return nil, &InvalidStateError{Index: len(module.items), Reason: "empty id"}
	}

	if i := module.items.Find(in.ID); i >= 0 {
		return module.increment(i), nil
	}

	module.commit(module.items.appended(in.item()))
	return module.items.Clone(), nil
}

// Increment adds one unit of id.
func (module *Cart) Increment(id string) (State, error) {
	if !module.ready() {
		return nil, ErrUninitialized
	}

	module.mu.Lock()
	defer module.mu.Unlock()

	i := module.items.Find(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	return module.increment(i), nil
}

// Decrement removes one unit of id. The line goes away with its last unit.
func (module *Cart) Decrement(id string) (State, error) {
	if !module.ready() {
		return nil, ErrUninitialized
	}

	module.mu.Lock()
	defer module.mu.Unlock()

	i := module.items.Find(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}

	item := module.items[i]
	if item.Quantity > 1 {
		item.Quantity--
		module.commit(module.items.with(i, item))
	} else {
		module.commit(module.items.without(i))
	}
	return module.items.Clone(), nil
}

func (module *Cart) increment(i int) State {
	item := module.items[i]
	item.Quantity++
	module.commit(module.items.with(i, item))
	return module.items.Clone()
}

// commit swaps in the next state and hands a snapshot to the bucket.
// Callers hold mu.
func (module *Cart) commit(next State) {
	module.items = next
	module.storage.Save(next.Clone())
}

func (module *Cart) ready() bool {
	return module != nil && module.booted
}
