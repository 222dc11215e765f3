package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Pravinale/pantonefrontend/models"
)

// cartKey is the session-file key holding the cart, a JSON array of line items.
const cartKey = "cartitem"

const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

var (
	// ErrInsufficientStock means the stock lookup succeeded but the
	// requested quantity exceeds what is available.
	ErrInsufficientStock = errors.New("not enough stock left")
	// ErrStockUnavailable means the stock lookup itself failed; callers
	// must treat stock as unknown and block the action, never assume
	// unlimited stock.
	ErrStockUnavailable = errors.New("stock unavailable")
	// ErrUnknownAction is returned for a quantity action other than
	// increase or decrease.
	ErrUnknownAction = errors.New("unknown quantity action")
)

// StockQuerier reads the authoritative available stock for one variant.
type StockQuerier interface {
	Stock(ctx context.Context, productID, color, size string) (int, error)
}

// CartStore is the single source of truth for the session's cart. Every
// successful mutation re-serializes the full cart to the session file, and
// the cart hydrates from there at construction. Anything other than a JSON
// array under the cart key hydrates as an empty cart.
type CartStore struct {
	mu    sync.Mutex
	items []models.LineItem
	local *LocalStore
	stock StockQuerier
}

func NewCartStore(local *LocalStore, stock StockQuerier) *CartStore {
	c := &CartStore{local: local, stock: stock}
	if raw, ok := local.Get(cartKey); ok {
		var items []models.LineItem
		if err := json.Unmarshal(raw, &items); err != nil {
			log.Printf("discarding malformed cart state: %v", err)
		} else {
			c.items = items
		}
	}
	return c
}

// Add merges the item into an existing line with the same (product, color,
// size) identity by bumping its quantity, or appends a new line with
// quantity 1. Stock is checked where the add originates (the product
// page's quantity-in-cart check), not here.
func (c *CartStore) Add(item models.LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Matches(item.ProductID, item.Color, item.Size) {
			c.items[i].Quantity++
			c.persistLocked()
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	c.persistLocked()
}

// Remove deletes the matching line. Removing an absent line is a no-op.
func (c *CartStore) Remove(productID, color, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, it := range c.items {
		if !it.Matches(productID, color, size) {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.persistLocked()
}

// UpdateQuantity steps the matching line's quantity up or down.
//
// Decrease clamps at 1; dropping a line is only ever the explicit Remove.
// Increase commits only after a live stock read shows room for one more
// unit. The check and the commit are not atomic with respect to other
// sessions mutating the same stock; the ceiling is best effort against the
// value this session last observed, and anything stronger must be enforced
// upstream.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID, color, size, action string) error {
	if action != ActionIncrease && action != ActionDecrease {
		return ErrUnknownAction
	}

	if action == ActionIncrease {
		stock, err := c.stock.Stock(ctx, productID, color, size)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStockUnavailable, err)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		for i := range c.items {
			if c.items[i].Matches(productID, color, size) {
				if c.items[i].Quantity+1 > stock {
					return ErrInsufficientStock
				}
				c.items[i].Quantity++
				break
			}
		}
		c.dropEmptyLocked()
		c.persistLocked()
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Matches(productID, color, size) {
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			}
			break
		}
	}
	c.dropEmptyLocked()
	c.persistLocked()
	return nil
}

// Clear empties the cart and erases its durable mirror.
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	if err := c.local.Delete(cartKey); err != nil {
		log.Printf("failed to erase cart state: %v", err)
	}
}

// Items returns a copy of the cart lines in insertion order.
func (c *CartStore) Items() []models.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// QuantityOf returns the quantity already in the cart for a variant, 0 if
// the line is absent.
func (c *CartStore) QuantityOf(productID, color, size string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.Matches(productID, color, size) {
			return it.Quantity
		}
	}
	return 0
}

// Subtotal is the plain sum of price x quantity, the cart-page total
// before the per-line delivery charge.
func (c *CartStore) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *CartStore) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// dropEmptyLocked filters out non-positive quantities. Unreachable given
// the clamp in UpdateQuantity, kept as a guard against bad hydrated state.
func (c *CartStore) dropEmptyLocked() {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *CartStore) persistLocked() {
	items := c.items
	if items == nil {
		items = []models.LineItem{}
	}
	if err := c.local.Set(cartKey, items); err != nil {
		log.Printf("failed to persist cart state: %v", err)
	}
}
