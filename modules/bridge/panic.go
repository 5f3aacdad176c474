package bridge

import (
	"errors"
	"fmt"
)

func panicError(r interface{}) error {
	switch rval := r.(type) {
	case error:
		return rval
	case string:
		return errors.New(rval)
	default:
		return fmt.Errorf("%v", rval)
	}
}
