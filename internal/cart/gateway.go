package cart

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

// API is the slice of the upstream client the cart domain depends on.
type API interface {
	GetCart(ctx context.Context) (*upstream.CartSnapshot, error)
	PatchCart(ctx context.Context, lines []upstream.CartLine) error
	GetProducts(ctx context.Context) ([]upstream.Product, error)
}

// Gateway reads the authoritative cart from the backend API and writes line
// changes back. It owns the persisted line list; the optimistic store owns the
// in-memory one. The two may transiently diverge.
type Gateway struct {
	api    API
	logger *logger.Logger
}

// NewGateway wires the cart gateway.
func NewGateway(api API, logg *logger.Logger) (*Gateway, error) {
	if api == nil {
		return nil, fmt.Errorf("upstream api required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Gateway{api: api, logger: logg}, nil
}

// FetchCart hydrates the persisted cart for the given session cart id. A
// missing id means no cart and returns (nil, nil). The raw cart and the
// catalog are read concurrently; a failed cart read degrades to no cart,
// while a failed catalog read is fatal for the call.
func (g *Gateway) FetchCart(ctx context.Context, cartID string) (*Cart, error) {
	if cartID == "" {
		return nil, nil
	}

	var (
		snapshot *upstream.CartSnapshot
		products []upstream.Product
		cartErr  error
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		snapshot, cartErr = g.api.GetCart(egCtx)
		return nil
	})
	eg.Go(func() error {
		var err error
		products, err = g.api.GetProducts(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if cartErr != nil {
		g.logger.Warn(g.logger.WithCartID(ctx, cartID), "cart.read_degraded_to_empty")
		return nil, nil
	}
	if snapshot == nil || snapshot.Lines == nil {
		return nil, nil
	}

	hydrated := g.hydrate(ctx, snapshot, products)
	return &hydrated, nil
}

// hydrate resolves each raw line against the catalog's flattened variant
// list. A line whose variant no longer exists is dropped, not reported: the
// product was deleted after the cart was created. A line whose quantity is
// zero or negative is equally dropped; such a line means removed and must not
// reappear. Totals are recomputed from the surviving lines; the snapshot's
// own totals are never trusted.
func (g *Gateway) hydrate(ctx context.Context, snapshot *upstream.CartSnapshot, products []upstream.Product) Cart {
	lines := make([]Item, 0, len(snapshot.Lines))
	for _, raw := range snapshot.Lines {
		if raw.Quantity <= 0 {
			g.logger.Debug(g.logger.WithField(ctx, "merchandise_id", raw.MerchandiseID), "cart.nonpositive_line_dropped")
			continue
		}
		variant, product, ok := findVariant(products, raw.MerchandiseID)
		if !ok {
			g.logger.Debug(g.logger.WithField(ctx, "merchandise_id", raw.MerchandiseID), "cart.stale_line_dropped")
			continue
		}

		unit := variant.Price.AmountDecimal()
		total := unit.Mul(decimalFromInt(raw.Quantity))
		lines = append(lines, Item{
			Quantity: raw.Quantity,
			Cost: ItemCost{TotalAmount: moneyWithScale(total, variant.Price)},
			Merchandise: Merchandise{
				ID:              variant.ID,
				Title:           variant.Title,
				SelectedOptions: variant.SelectedOptions,
				Product:         snapshotOf(product),
			},
		})
	}

	totalQuantity, cost := RecomputeTotals(lines)
	return Cart{
		ID:            snapshot.ID,
		CheckoutURL:   snapshot.CheckoutURL,
		Lines:         lines,
		TotalQuantity: totalQuantity,
		Cost:          cost,
	}
}

// PersistLines replaces the entire server-side line list. Full-replace, so a
// retry after a transient failure is safe.
func (g *Gateway) PersistLines(ctx context.Context, lines []upstream.CartLine) error {
	return g.api.PatchCart(ctx, lines)
}

// RawLines reads the currently persisted lines, always fresh.
func (g *Gateway) RawLines(ctx context.Context) ([]upstream.CartLine, error) {
	snapshot, err := g.api.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return []upstream.CartLine{}, nil
	}
	return snapshot.Lines, nil
}

func findVariant(products []upstream.Product, merchandiseID string) (upstream.ProductVariant, upstream.Product, bool) {
	for _, product := range products {
		for _, variant := range product.Variants {
			if variant.ID == merchandiseID {
				return variant, product, true
			}
		}
	}
	return upstream.ProductVariant{}, upstream.Product{}, false
}
