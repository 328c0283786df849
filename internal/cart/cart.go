package cart

import "sync"

// Snapshot is the product information copied into a line when it is added.
// Upstream price changes never touch lines already in the cart.
type Snapshot struct {
	ProductID string
	Name      string
	Price     int64
	Image     string
}

// Line is one product's entry in a cart. Quantity is always >= 1; a line
// that would reach zero is removed instead.
type Line struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Cart keys lines by product id and remembers insertion order for display.
// Methods are safe for concurrent use; every mutation is a single atomic
// update under the lock.
type Cart struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// AddLine increments the quantity for an existing product or inserts a new
// line with quantity 1, snapshotting name/price/image at this moment.
func (c *Cart) AddLine(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[snap.ProductID]; ok {
		line.Quantity++
		return
	}

	c.lines[snap.ProductID] = &Line{
		ProductID: snap.ProductID,
		Name:      snap.Name,
		Price:     snap.Price,
		Image:     snap.Image,
		Quantity:  1,
	}
	c.order = append(c.order, snap.ProductID)
}

// RemoveLine decrements the quantity, deleting the line when it would drop
// below 1. Unknown ids are a no-op.
func (c *Cart) RemoveLine(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if line.Quantity > 1 {
		line.Quantity--
		return
	}
	c.deleteLocked(productID)
}

// SetQuantity sets the quantity of an existing line, deleting it when n <= 0.
// Setting a quantity for an unknown id is deliberately a no-op rather than an
// insert: inserting here would bypass the add-time snapshot.
func (c *Cart) SetQuantity(productID string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 {
		c.deleteLocked(productID)
		return
	}
	if line, ok := c.lines[productID]; ok {
		line.Quantity = n
	}
}

// UpdateNote sets the free-text note on an existing line. Unknown ids are a
// no-op.
func (c *Cart) UpdateNote(productID, note string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[productID]; ok {
		line.Note = note
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]*Line)
	c.order = nil
}

// Total is the sum of price x quantity over all lines, recomputed on every
// call.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, line := range c.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}
	return lines
}

func (c *Cart) deleteLocked(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
