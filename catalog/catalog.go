// Package catalog filters and sorts an in-memory product list the way the
// storefront's product browser does.
package catalog

import (
	"sort"

	"github.com/Keerthims13/ecommerce-platform/models"
)

type SortKey string

const (
	SortPopular   SortKey = "popular" // input order
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest" // reverse of input order
)

func ParseSort(s string) (SortKey, bool) {
	switch SortKey(s) {
	case "", SortPopular:
		return SortPopular, true
	case SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return SortKey(s), true
	default:
		return "", false
	}
}

type Query struct {
	CategoryIDs []uint // empty means every category
	MinPrice    *float64
	MaxPrice    *float64
	Sort        SortKey
}

// Apply returns the products matching q, ordered by q.Sort. The input slice
// is not modified.
func Apply(products []models.Product, q Query) []models.Product {
	categories := make(map[uint]struct{}, len(q.CategoryIDs))
	for _, id := range q.CategoryIDs {
		categories[id] = struct{}{}
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if len(categories) > 0 {
			if _, ok := categories[p.CategoryID]; !ok {
				continue
			}
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortNewest:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	return out
}

// MaxPrice is the highest price in products, used to size the price slider.
func MaxPrice(products []models.Product) float64 {
	var max float64
	for _, p := range products {
		if p.Price > max {
			max = p.Price
		}
	}
	return max
}
