// Package seed reads the cart a first-time user starts with.
package seed

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/tryanzu/cart/modules/cart"
)

type file struct {
	Items []line `toml:"items"`
}

type line struct {
	ID       string `toml:"id"`
	Title    string `toml:"title"`
	Image    string `toml:"image_url"`
	Price    int64  `toml:"price"`
	Quantity int    `toml:"quantity"`
}

// Load decodes a TOML seed file. An empty path means no seed. Quantities
// below one are raised to one, the same way Add treats them.
func Load(path string) (cart.State, error) {
	if path == "" {
		return cart.State{}, nil
	}

	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}

	state := make(cart.State, 0, len(f.Items))
	for _, l := range f.Items {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		state = append(state, cart.Item{
			ID:       l.ID,
			Title:    l.Title,
			Image:    l.Image,
			Price:    l.Price,
			Quantity: qty,
		})
	}

	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("seed: %s: %w", path, err)
	}
	return state, nil
}
