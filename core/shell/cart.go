package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/exceptions"
)

// Flusher pushes the pending snapshot to storage.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Commands runs cart commands for one user at a time and writes their
// outcome to Out.
type Commands struct {
	Cart     *cart.Cart
	Storage  Flusher
	Currency string
	Out      io.Writer
	Reporter *exceptions.Reporter
}

func (cmd Commands) List(args []string) error {
	items, err := cmd.Cart.Items()
	if err != nil {
		return err
	}
	Render(cmd.Out, items, cmd.Currency)
	return nil
}

// Add expects: <id> <price> [quantity] [title...]. A quantity is only taken
// when the third argument is a number.
func (cmd Commands) Add(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: add <id> <price> [quantity] [title...]")
	}

	price, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || price < 0 {
		return fmt.Errorf("invalid price %q", args[1])
	}

	in := cart.AddInput{ID: args[0], Price: price}
	rest := args[2:]
	if len(rest) > 0 {
		if qty, err := strconv.Atoi(rest[0]); err == nil {
			in.Quantity = qty
			rest = rest[1:]
		}
	}
	in.Title = strings.Join(rest, " ")

	items, err := cmd.Cart.Add(in)
	if err != nil {
		return err
	}
	Render(cmd.Out, items, cmd.Currency)
	return nil
}

func (cmd Commands) Increment(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: inc <id>")
	}
	items, err := cmd.Cart.Increment(args[0])
	if err != nil {
		return err
	}
	Render(cmd.Out, items, cmd.Currency)
	return nil
}

func (cmd Commands) Decrement(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dec <id>")
	}
	items, err := cmd.Cart.Decrement(args[0])
	if err != nil {
		return err
	}
	Render(cmd.Out, items, cmd.Currency)
	return nil
}

func (cmd Commands) Flush(args []string) error {
	if cmd.Storage == nil {
		return nil
	}
	if err := cmd.Storage.Flush(context.Background()); err != nil {
		return err
	}
	io.WriteString(cmd.Out, "saved\n")
	return nil
}
