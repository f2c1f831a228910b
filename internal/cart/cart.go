// Package cart keeps the in-progress sale of every signed-in staff member.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
)

// Line is one scanned variant in a cart.
type Line struct {
	VariantID     string
	SKU           string
	ProductName   string
	VariantLabel  string
	UnitPrice     decimal.Decimal
	UnitCostPrice decimal.Decimal
	Quantity      int
}

// Description is the text stored on the sold line item.
func (l Line) Description() string {
	if l.VariantLabel == "" {
		return l.ProductName
	}
	return l.ProductName + " (" + l.VariantLabel + ")"
}

// LineTotal returns unit price times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// AddItem appends the variant or bumps the quantity of an existing line with the same SKU.
func (c *Cart) AddItem(v model.ResolvedVariant, quantity int) error {
	if v.TotalStock <= 0 {
		return domainErrors.ErrOutOfStock
	}
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].SKU == v.SKU {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		VariantID:     v.VariantID,
		SKU:           v.SKU,
		ProductName:   v.ProductName,
		VariantLabel:  v.VariantLabel,
		UnitPrice:     v.UnitPrice,
		UnitCostPrice: v.UnitCostPrice,
		Quantity:      quantity,
	})
	return nil
}

// UpdateQuantity adds delta to the line quantity, never going below 1.
func (c *Cart) UpdateQuantity(sku string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].SKU == sku {
			c.lines[i].Quantity = max(1, c.lines[i].Quantity+delta)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// RemoveItem drops the line with sku.
func (c *Cart) RemoveItem(sku string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].SKU == sku {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Release subtracts the quantities of a checked-out snapshot. Lines and
// quantities added after the snapshot was taken stay in the cart.
func (c *Cart) Release(s Snapshot) {
	sold := make(map[string]int, len(s.Lines))
	for _, l := range s.Lines {
		sold[l.SKU] += l.Quantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.lines[:0]
	for _, l := range c.lines {
		l.Quantity -= sold[l.SKU]
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Snapshot returns a copy that later cart edits do not affect.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Lines: append([]Line(nil), c.lines...)}
}

// Snapshot is an immutable view of a cart.
type Snapshot struct {
	Lines []Line
}

// Empty reports whether the snapshot has no lines.
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// Subtotal sums the line totals.
func (s Snapshot) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// SettleItems converts the snapshot into checkout input.
func (s Snapshot) SettleItems() []model.SettleItem {
	items := make([]model.SettleItem, 0, len(s.Lines))
	for _, l := range s.Lines {
		items = append(items, model.SettleItem{
			VariantID:     l.VariantID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			UnitCostPrice: l.UnitCostPrice,
			Description:   l.Description(),
		})
	}
	return items
}

// Registry holds one cart per staff member.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// For returns the cart of staffID, creating it on first use.
func (r *Registry) For(staffID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[staffID]
	if !ok {
		c = &Cart{}
		r.carts[staffID] = c
	}
	return c
}

// Drop forgets the cart of staffID.
func (r *Registry) Drop(staffID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, staffID)
}
