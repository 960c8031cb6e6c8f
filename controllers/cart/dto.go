package cartControllers

import "github.com/Keerthims13/ecommerce-platform/cart"

type CartItemResponse struct {
	ProductID       uint    `json:"product_id"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
	LineTotal       float64 `json:"line_total"`
}

type CartResponse struct {
	SessionID     string             `json:"session_id"`
	Items         []CartItemResponse `json:"items"`
	PromoCode     string             `json:"promo_code,omitempty"`
	PromoApplied  bool               `json:"promo_applied"`
	Subtotal      float64            `json:"subtotal"`
	Savings       float64            `json:"savings"`
	Shipping      float64            `json:"shipping"`
	PromoDiscount float64            `json:"promo_discount"`
	Total         float64            `json:"total"`
}

func toResponse(sessionID string, snap cart.Snapshot) CartResponse {
	items := make([]CartItemResponse, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, CartItemResponse{
			ProductID:       it.ProductID,
			Name:            it.Name,
			UnitPrice:       it.UnitPrice.InexactFloat64(),
			Quantity:        it.Quantity,
			DiscountPercent: it.DiscountPercent.InexactFloat64(),
			LineTotal:       it.LineTotal().InexactFloat64(),
		})
	}

	return CartResponse{
		SessionID:     sessionID,
		Items:         items,
		PromoCode:     snap.PromoCode,
		PromoApplied:  snap.PromoApplied,
		Subtotal:      snap.Totals.Subtotal.InexactFloat64(),
		Savings:       snap.Totals.Savings.InexactFloat64(),
		Shipping:      snap.Totals.Shipping.InexactFloat64(),
		PromoDiscount: snap.Totals.PromoDiscount.InexactFloat64(),
		Total:         snap.Totals.Total.InexactFloat64(),
	}
}
