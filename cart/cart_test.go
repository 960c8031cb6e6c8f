package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func item(id uint, price int64, discount int64) Item {
	return Item{
		ProductID:       id,
		Name:            "product",
		UnitPrice:       decimal.NewFromInt(price),
		DiscountPercent: decimal.NewFromInt(discount),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestAdd_MergesSameProduct(t *testing.T) {
	c := New()
	c.Add(item(1, 500, 10), 2)
	c.Add(item(1, 500, 10), 3)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAdd_NonPositiveQuantityCountsAsOne(t *testing.T) {
	c := New()
	c.Add(item(1, 500, 10), 0)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name    string
		qty     int
		wantLen int
	}{
		{"positive overwrites", 7, 1},
		{"zero removes", 0, 0},
		{"negative removes", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Add(item(1, 500, 10), 2)

			assert.True(t, c.SetQuantity(1, tt.qty))
			assert.Equal(t, tt.wantLen, c.Len())
			if tt.wantLen == 1 {
				assert.Equal(t, tt.qty, c.Items()[0].Quantity)
			}
		})
	}
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	c := New()
	assert.False(t, c.SetQuantity(42, 3))
	assert.False(t, c.Remove(42))
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(item(1, 500, 10), 1)
	c.Add(item(2, 1500, 10), 1)
	c.ApplyPromo("SAVE5")

	assert.True(t, c.Remove(1))
	require.Len(t, c.Items(), 1)
	assert.Equal(t, uint(2), c.Items()[0].ProductID)

	c.Clear()
	snap := c.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.PromoApplied)
}

func TestTotals_WithPromo(t *testing.T) {
	c := New()
	c.Add(item(1, 500, 10), 1)
	c.Add(item(2, 1500, 10), 1)
	require.True(t, c.ApplyPromo("anything"))

	got := c.Totals()
	assertDecimal(t, "2000", got.Subtotal)
	assertDecimal(t, "200", got.Savings)
	assertDecimal(t, "0", got.Shipping)
	assertDecimal(t, "100", got.PromoDiscount)
	assertDecimal(t, "1700", got.Total)
}

func TestTotals_FlatShippingAtThreshold(t *testing.T) {
	got := Compute([]Item{{
		ProductID:       1,
		UnitPrice:       decimal.NewFromInt(250),
		Quantity:        4,
		DiscountPercent: decimal.Zero,
	}}, false)

	assertDecimal(t, "1000", got.Subtotal)
	assertDecimal(t, "100", got.Shipping)
	assertDecimal(t, "0", got.PromoDiscount)
	assertDecimal(t, "1100", got.Total)
}

func TestApplyPromo_BlankCodeRejected(t *testing.T) {
	c := New()
	assert.False(t, c.ApplyPromo("   "))
	assert.False(t, c.Snapshot().PromoApplied)
}

func TestSubscribe(t *testing.T) {
	c := New()

	var got []Snapshot
	unsubscribe := c.Subscribe(func(s Snapshot) { got = append(got, s) })

	c.Add(item(1, 500, 10), 1)
	c.SetQuantity(1, 3)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].Items[0].Quantity)
	assertDecimal(t, "1500", got[1].Totals.Subtotal)

	unsubscribe()
	c.Clear()
	assert.Len(t, got, 2)
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(item(1, 10, 0), 1)
		}()
	}
	wg.Wait()

	require.Len(t, c.Items(), 1)
	assert.Equal(t, 50, c.Items()[0].Quantity)
}

func TestTake_IsSingleUse(t *testing.T) {
	c := New()
	c.Add(item(1, 500, 10), 1)
	c.ApplyPromo("WELCOME")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		owners int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if len(c.Take().Items) > 0 {
				mu.Lock()
				owners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, owners)
	assert.Zero(t, c.Len())
	assert.False(t, c.Snapshot().PromoApplied)
}

func TestRestore_MergesWithNewLines(t *testing.T) {
	c := New()
	c.Add(item(1, 500, 10), 2)
	c.ApplyPromo("WELCOME")

	taken := c.Take()
	c.Add(item(1, 500, 10), 1)
	c.Add(item(2, 100, 0), 1)
	c.Restore(taken)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "WELCOME", c.Snapshot().PromoCode)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	id, c := r.Create()
	require.NotEmpty(t, id)

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, c, got)

	r.Delete(id)
	_, ok = r.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SweepDropsIdleSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(WithIdleTTL(time.Hour), WithClock(func() time.Time { return now }))

	idle, _ := r.Create()
	active, _ := r.Create()

	now = now.Add(30 * time.Minute)
	_, ok := r.Get(active)
	require.True(t, ok)

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, r.Sweep())

	_, ok = r.Get(idle)
	assert.False(t, ok)
	_, ok = r.Get(active)
	assert.True(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	r := NewRegistry(WithIdleTTL(time.Millisecond))
	r.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx, 5*time.Millisecond, zap.NewNop())
	}()

	require.Eventually(t, func() bool { return r.Len() == 0 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
