// Package cart holds shopping carts in memory and prices them.
//
// A Cart is an observable store: every mutation hands a Snapshot to the
// registered subscribers once the cart's lock has been released.
package cart

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID       uint
	Name            string
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountPercent decimal.Decimal
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Snapshot struct {
	Items        []Item
	PromoCode    string
	PromoApplied bool
	Totals       Totals
}

type Cart struct {
	mu        sync.Mutex
	items     []Item
	promoCode string

	subMu     sync.Mutex
	subs      map[int]func(Snapshot)
	nextSubID int
}

func New() *Cart {
	return &Cart{subs: make(map[int]func(Snapshot))}
}

// Add merges qty into the line for item.ProductID, creating the line when
// absent. Quantities below one count as one.
func (c *Cart) Add(item Item, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = qty
		c.items = append(c.items, item)
	}
	c.mu.Unlock()

	c.notify()
}

// Remove drops the line for productID. It reports whether a line existed.
func (c *Cart) Remove(productID uint) bool {
	c.mu.Lock()
	removed := c.removeLocked(productID)
	c.mu.Unlock()

	if removed {
		c.notify()
	}
	return removed
}

// SetQuantity overwrites a line's quantity; qty <= 0 removes the line.
// It reports whether the line existed.
func (c *Cart) SetQuantity(productID uint, qty int) bool {
	c.mu.Lock()
	var found bool
	if qty <= 0 {
		found = c.removeLocked(productID)
	} else {
		for i := range c.items {
			if c.items[i].ProductID == productID {
				c.items[i].Quantity = qty
				found = true
				break
			}
		}
	}
	c.mu.Unlock()

	if found {
		c.notify()
	}
	return found
}

// Clear empties the cart and forgets the promo code.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.promoCode = ""
	c.mu.Unlock()

	c.notify()
}

// Take empties the cart and returns what it held, so only one caller can
// own a given set of lines. An empty cart is left alone.
func (c *Cart) Take() Snapshot {
	c.mu.Lock()
	items := c.items
	promo := c.promoCode
	if len(items) > 0 {
		c.items = nil
		c.promoCode = ""
	}
	c.mu.Unlock()

	if len(items) > 0 {
		c.notify()
	}
	return Snapshot{
		Items:        items,
		PromoCode:    promo,
		PromoApplied: promo != "",
		Totals:       Compute(items, promo != ""),
	}
}

// Restore puts back lines returned by Take. Lines added in the meantime
// are kept and quantities for the same product are summed. A promo code
// set in the meantime wins.
func (c *Cart) Restore(s Snapshot) {
	if len(s.Items) == 0 && s.PromoCode == "" {
		return
	}

	c.mu.Lock()
	for _, it := range s.Items {
		merged := false
		for i := range c.items {
			if c.items[i].ProductID == it.ProductID {
				c.items[i].Quantity += it.Quantity
				merged = true
				break
			}
		}
		if !merged {
			c.items = append(c.items, it)
		}
	}
	if c.promoCode == "" {
		c.promoCode = s.PromoCode
	}
	c.mu.Unlock()

	c.notify()
}

// ApplyPromo accepts any non-blank code. Codes are not validated.
func (c *Cart) ApplyPromo(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	c.mu.Lock()
	c.promoCode = code
	c.mu.Unlock()

	c.notify()
	return true
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Totals() Totals {
	return c.Snapshot().Totals
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	items := append([]Item(nil), c.items...)
	promo := c.promoCode
	c.mu.Unlock()

	return Snapshot{
		Items:        items,
		PromoCode:    promo,
		PromoApplied: promo != "",
		Totals:       Compute(items, promo != ""),
	}
}

// Subscribe registers fn for change notifications. The returned func
// unregisters it.
func (c *Cart) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Cart) removeLocked(productID uint) bool {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) notify() {
	c.subMu.Lock()
	if len(c.subs) == 0 {
		c.subMu.Unlock()
		return
	}
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	snap := c.Snapshot()
	for _, fn := range subs {
		fn(snap)
	}
}
