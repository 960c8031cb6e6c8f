package cart

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal a cart must exceed to ship free.
	FreeShippingThreshold = decimal.NewFromInt(1000)
	// FlatShipping is charged when the subtotal is at or below the threshold.
	FlatShipping = decimal.NewFromInt(100)
	// PromoPercent is taken off the subtotal once any promo code is applied.
	PromoPercent = decimal.NewFromInt(5)
	// DefaultDiscountPercent is the line discount used when a product has none.
	DefaultDiscountPercent = decimal.NewFromInt(10)

	hundred = decimal.NewFromInt(100)
)

type Totals struct {
	Subtotal      decimal.Decimal
	Savings       decimal.Decimal
	Shipping      decimal.Decimal
	PromoDiscount decimal.Decimal
	Total         decimal.Decimal
}

// Compute prices a list of lines:
//
//	total = subtotal - savings + shipping - promoDiscount
func Compute(items []Item, promoApplied bool) Totals {
	subtotal := decimal.Zero
	savings := decimal.Zero

	for _, item := range items {
		line := item.LineTotal()
		subtotal = subtotal.Add(line)
		savings = savings.Add(line.Mul(item.DiscountPercent).Div(hundred))
	}

	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	promo := decimal.Zero
	if promoApplied {
		promo = subtotal.Mul(PromoPercent).Div(hundred)
	}

	return Totals{
		Subtotal:      subtotal,
		Savings:       savings,
		Shipping:      shipping,
		PromoDiscount: promo,
		Total:         subtotal.Sub(savings).Add(shipping).Sub(promo),
	}
}
