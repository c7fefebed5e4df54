package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/angelmondragon/storefront-backend/pkg/upstream"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// SortKeyPrice orders products by their cheapest variant; any other sort key
// orders by last update time.
const SortKeyPrice = "PRICE"

const maxRecommendations = 4

// API is the slice of the upstream client the catalog depends on.
type API interface {
	GetProducts(ctx context.Context) ([]upstream.Product, error)
	GetCollections(ctx context.Context) ([]upstream.Collection, error)
	GetPages(ctx context.Context) ([]upstream.Page, error)
	GetMenu(ctx context.Context) ([]types.MenuItem, error)
}

// Service exposes catalog reads. Every failure here is fatal for the caller's
// render; there is no fallback content.
type Service interface {
	GetProducts(ctx context.Context, query, sortKey string, reverse bool) ([]upstream.Product, error)
	GetProduct(ctx context.Context, handle string) (*upstream.Product, error)
	GetProductRecommendations(ctx context.Context, productID string) ([]upstream.Product, error)
	GetCollections(ctx context.Context) ([]upstream.Collection, error)
	GetCollection(ctx context.Context, handle string) (*upstream.Collection, error)
	GetCollectionProducts(ctx context.Context, collection, sortKey string, reverse bool) ([]upstream.Product, error)
	GetPages(ctx context.Context) ([]upstream.Page, error)
	GetPage(ctx context.Context, handle string) (*upstream.Page, error)
	GetMenu(ctx context.Context, handle string) ([]types.MenuItem, error)
}

type service struct {
	api API
}

// NewService builds the catalog service over the upstream client.
func NewService(api API) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("upstream api required")
	}
	return &service{api: api}, nil
}

func (s *service) GetProducts(ctx context.Context, query, sortKey string, reverse bool) ([]upstream.Product, error) {
	products, err := s.api.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	if query != "" {
		products = filterProducts(products, query)
	}
	sortProducts(products, sortKey, reverse)
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, handle string) (*upstream.Product, error) {
	products, err := s.api.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Handle == handle {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", handle))
}

// GetProductRecommendations offers up to four other products from the
// product's primary collection.
func (s *service) GetProductRecommendations(ctx context.Context, productID string) ([]upstream.Product, error) {
	products, err := s.api.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	var current *upstream.Product
	for i := range products {
		if products[i].ID == productID {
			current = &products[i]
			break
		}
	}
	if current == nil || len(current.Collections) == 0 {
		return []upstream.Product{}, nil
	}

	primary := current.Collections[0]
	recommended := make([]upstream.Product, 0, maxRecommendations)
	for _, product := range products {
		if product.ID == productID || !product.InCollection(primary) {
			continue
		}
		recommended = append(recommended, product)
		if len(recommended) == maxRecommendations {
			break
		}
	}
	return recommended, nil
}

// GetCollections returns every collection with its storefront search path.
func (s *service) GetCollections(ctx context.Context) ([]upstream.Collection, error) {
	collections, err := s.api.GetCollections(ctx)
	if err != nil {
		return nil, err
	}
	withPaths := make([]upstream.Collection, len(collections))
	for i, collection := range collections {
		collection.Path = "/search/" + collection.Handle
		withPaths[i] = collection
	}
	return withPaths, nil
}

func (s *service) GetCollection(ctx context.Context, handle string) (*upstream.Collection, error) {
	collections, err := s.GetCollections(ctx)
	if err != nil {
		return nil, err
	}
	for i := range collections {
		if collections[i].Handle == handle {
			return &collections[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("collection %q not found", handle))
}

func (s *service) GetCollectionProducts(ctx context.Context, collection, sortKey string, reverse bool) ([]upstream.Product, error) {
	products, err := s.api.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]upstream.Product, 0, len(products))
	for _, product := range products {
		if product.InCollection(collection) {
			filtered = append(filtered, product)
		}
	}
	sortProducts(filtered, sortKey, reverse)
	return filtered, nil
}

func (s *service) GetPages(ctx context.Context) ([]upstream.Page, error) {
	return s.api.GetPages(ctx)
}

func (s *service) GetPage(ctx context.Context, handle string) (*upstream.Page, error) {
	pages, err := s.api.GetPages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if pages[i].Handle == handle {
			return &pages[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("page %q not found", handle))
}

// GetMenu returns the navigation menu. The handle is accepted for interface
// compatibility; the backend serves a single menu.
func (s *service) GetMenu(ctx context.Context, handle string) ([]types.MenuItem, error) {
	_ = handle
	return s.api.GetMenu(ctx)
}

func filterProducts(products []upstream.Product, query string) []upstream.Product {
	needle := strings.ToLower(query)
	matched := make([]upstream.Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Title), needle) ||
			strings.Contains(strings.ToLower(product.Description), needle) {
			matched = append(matched, product)
			continue
		}
		for _, tag := range product.Tags {
			if strings.EqualFold(tag, query) {
				matched = append(matched, product)
				break
			}
		}
	}
	return matched
}
