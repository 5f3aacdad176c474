package cart

import (
	"errors"
	"fmt"
)

// ErrUninitialized is returned when a cart that was never booted is used.
var ErrUninitialized = errors.New("cart accessed without initialization")

// NotFoundError is returned by Increment and Decrement for ids not in the cart.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cart item %q not found", e.ID)
}

// IsNotFound tells whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// DeserializationError means the persisted snapshot could not be turned back
// into a valid State.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("corrupt cart snapshot under %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// InvalidStateError describes which line breaks the cart invariants.
type InvalidStateError struct {
	Index  int
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid cart line %d: %s", e.Index, e.Reason)
}
