package cart

import (
	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

// UpdateType names the three quantity operations a line supports.
type UpdateType string

const (
	UpdatePlus   UpdateType = "plus"
	UpdateMinus  UpdateType = "minus"
	UpdateDelete UpdateType = "delete"
)

// ProductSnapshot is the trimmed slice of a product a cart line carries for
// display. It is not the full catalog record.
type ProductSnapshot struct {
	ID            string      `json:"id"`
	Handle        string      `json:"handle"`
	Title         string      `json:"title"`
	FeaturedImage types.Image `json:"featuredImage"`
}

// Merchandise references the originating variant plus its product snapshot.
type Merchandise struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	SelectedOptions []types.SelectedOption `json:"selectedOptions"`
	Product         ProductSnapshot        `json:"product"`
}

// ItemCost holds the derived line total: unit price times quantity.
type ItemCost struct {
	TotalAmount types.Money `json:"totalAmount"`
}

// Item is one hydrated cart line. At most one Item exists per variant id.
type Item struct {
	Quantity    int         `json:"quantity"`
	Cost        ItemCost    `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
}

// Cost aggregates the cart-level amounts; all derived from the lines. Tax is
// always zero in this model.
type Cost struct {
	SubtotalAmount types.Money `json:"subtotalAmount"`
	TotalAmount    types.Money `json:"totalAmount"`
	TotalTaxAmount types.Money `json:"totalTaxAmount"`
}

// Cart is the hydrated, display-ready cart. TotalQuantity and Cost are always
// recomputed from Lines, never stored independently.
type Cart struct {
	ID            string `json:"id,omitempty"`
	CheckoutURL   string `json:"checkoutUrl"`
	Lines         []Item `json:"lines"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          Cost   `json:"cost"`
}

// Empty returns the canonical empty cart: no id, no lines, zero totals.
func Empty() Cart {
	return Cart{
		Lines:         []Item{},
		TotalQuantity: 0,
		Cost: Cost{
			SubtotalAmount: types.ZeroMoney(types.DefaultCurrency),
			TotalAmount:    types.ZeroMoney(types.DefaultCurrency),
			TotalTaxAmount: types.ZeroMoney(types.DefaultCurrency),
		},
	}
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func snapshotOf(product upstream.Product) ProductSnapshot {
	return ProductSnapshot{
		ID:            product.ID,
		Handle:        product.Handle,
		Title:         product.Title,
		FeaturedImage: product.FeaturedImage,
	}
}
