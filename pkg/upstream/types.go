package upstream

import (
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// ProductOption enumerates the values available for one product axis.
type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ProductVariant is one purchasable variation of a product. It belongs to
// exactly one product and carries its own price.
type ProductVariant struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	AvailableForSale bool                   `json:"availableForSale"`
	SelectedOptions  []types.SelectedOption `json:"selectedOptions"`
	Price            types.Money            `json:"price"`
}

// PriceRange spans the cheapest and the most expensive variant.
type PriceRange struct {
	MaxVariantPrice types.Money `json:"maxVariantPrice"`
	MinVariantPrice types.Money `json:"minVariantPrice"`
}

// Product is the full catalog record served by the backend API.
type Product struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	AvailableForSale bool             `json:"availableForSale"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	DescriptionHTML  string           `json:"descriptionHtml"`
	Options          []ProductOption  `json:"options"`
	PriceRange       PriceRange       `json:"priceRange"`
	Variants         []ProductVariant `json:"variants"`
	FeaturedImage    types.Image      `json:"featuredImage"`
	Images           []types.Image    `json:"images"`
	Collections      []string         `json:"collections,omitempty"`
	SEO              types.SEO        `json:"seo"`
	Tags             []string         `json:"tags"`
	UpdatedAt        string           `json:"updatedAt"`
}

// InCollection reports whether the product is tagged with the handle.
func (p Product) InCollection(handle string) bool {
	for _, h := range p.Collections {
		if h == handle {
			return true
		}
	}
	return false
}

// Collection groups products under a human-stable handle.
type Collection struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SEO         types.SEO `json:"seo"`
	UpdatedAt   string    `json:"updatedAt"`
	Path        string    `json:"path,omitempty"`
}

// Page is a static content page.
type Page struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	Body        string     `json:"body"`
	BodySummary string     `json:"bodySummary"`
	SEO         *types.SEO `json:"seo,omitempty"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// CartLine is the persisted shape of one cart entry: a variant reference and a
// quantity, nothing more.
type CartLine struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartSnapshot is the raw persisted cart as the backend stores it. Its totals,
// if present, are never trusted; the storefront recomputes them after
// hydration.
type CartSnapshot struct {
	ID          string     `json:"id"`
	CheckoutURL string     `json:"checkoutUrl"`
	Lines       []CartLine `json:"lines"`
}
