package cart

// Item is one product line inside the cart. Price is expressed in the
// smallest currency unit and never changes once the item is in the cart.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image_url"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Subtotal of the line.
func (item Item) Subtotal() int64 {
	return item.Price * int64(item.Quantity)
}

// AddInput describes a product being put in the cart. A Quantity that is not
// positive means one unit.
type AddInput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image_url"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

func (in AddInput) item() Item {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	return Item{
		ID:       in.ID,
		Title:    in.Title,
		Image:    in.Image,
		Price:    in.Price,
		Quantity: qty,
	}
}

// State is the ordered list of items in the cart. A State value handed out by
// the cart is never modified afterwards; every mutation builds a new one.
type State []Item

// Find returns the position of id or -1.
func (s State) Find(id string) int {
	for i, item := range s {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Count sums the quantities of every line.
func (s State) Count() (n int) {
	for _, item := range s {
		n += item.Quantity
	}
	return
}

// Total sums the subtotals of every line.
func (s State) Total() (total int64) {
	for _, item := range s {
		total += item.Subtotal()
	}
	return
}

// Clone returns a copy that shares nothing with s.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Validate reports whether s upholds the cart invariants: non-empty unique
// ids and quantities of at least one.
func (s State) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, item := range s {
		if item.ID == "" {
			return &InvalidStateError{Index: i, Reason: "empty id"}
		}
		if _, dup := seen[item.ID]; dup {
			return &InvalidStateError{Index: i, Reason: "duplicated id " + item.ID}
		}
		if item.Quantity < 1 {
			return &InvalidStateError{Index: i, Reason: "quantity below one for " + item.ID}
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// with returns a copy of s where the line at i was replaced by item.
func (s State) with(i int, item Item) State {
	next := s.Clone()
	next[i] = item
	return next
}

// without returns a copy of s minus the line at i.
func (s State) without(i int) State {
	next := make(State, 0, len(s)-1)
	next = append(next, s[:i]...)
	return append(next, s[i+1:]...)
}

// appended returns a copy of s with item added at the end.
func (s State) appended(item Item) State {
	next := make(State, 0, len(s)+1)
	next = append(next, s...)
	return append(next, item)
}
