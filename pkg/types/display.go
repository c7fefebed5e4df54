package types

// Image is the upstream representation of a product or page image.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// SEO carries the metadata block attached to products, collections and pages.
type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MenuItem is one entry of the storefront navigation menu.
type MenuItem struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// SelectedOption distinguishes a variant within its product (e.g. size, color).
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
