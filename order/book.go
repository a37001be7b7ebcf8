package order

// Book is the set of currently OPEN limit orders in insertion order.
// The matching step walks it FIFO, so two orders for the same symbol
// resolve in the order they were placed.
type Book struct {
	open []*Order
}

func NewBook() *Book {
	return &Book{}
}

// Add appends an open order to the book.
func (b *Book) Add(o *Order) {
	b.open = append(b.open, o)
}

// Remove drops the order with the given id, preserving the order of
// the rest.
func (b *Book) Remove(id string) {
	for i, o := range b.open {
		if o.ID == id {
			b.open = append(b.open[:i], b.open[i+1:]...)
			return
		}
	}
}

// Find returns the earliest-placed open order matching symbol, limit
// price and quantity, or nil. The FIFO scan is the tie-break when
// several orders match identically.
func (b *Book) Find(symbol string, limit, qty float64) *Order {
	for _, o := range b.open {
		if o.Symbol == symbol && o.Limit != nil && *o.Limit == limit && o.Quantity == qty {
			return o
		}
	}
	return nil
}

// BySymbol returns the open orders for symbol in placement order.
func (b *Book) BySymbol(symbol string) []*Order {
	var out []*Order
	for _, o := range b.open {
		if o.Symbol == symbol {
			out = append(out, o)
		}
	}
	return out
}

// Snapshot returns a copy of the book's order list. The matching step
// evaluates against the snapshot so mutations made while committing
// cannot reorder or re-evaluate the pass.
func (b *Book) Snapshot() []*Order {
	out := make([]*Order, len(b.open))
	copy(out, b.open)
	return out
}

// Len is the number of open orders.
func (b *Book) Len() int { return len(b.open) }
