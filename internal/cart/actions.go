package cart

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Actions are the boundary operations that realize cart mutations against the
// backend. Each one reads the persisted lines, merges, and writes the full
// list back. There is no version check: concurrent calls for the same
// merchandise id race and the last writer wins. Calls for different ids are
// safe to run concurrently.
type Actions struct {
	gateway *Gateway
	logger  *logger.Logger
}

// NewActions wires the actions layer.
func NewActions(gateway *Gateway, logg *logger.Logger) (*Actions, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Actions{gateway: gateway, logger: logg}, nil
}

// AddItem adds one unit of the merchandise to the persisted cart.
func (a *Actions) AddItem(ctx context.Context, merchandiseID string) error {
	lines, err := a.gateway.RawLines(ctx)
	if err != nil {
		return err
	}
	return a.gateway.PersistLines(ctx, MergeLines(lines, merchandiseID, 1))
}

// UpdateItemQuantity sets the absolute quantity of the matching line; zero or
// below removes it.
func (a *Actions) UpdateItemQuantity(ctx context.Context, merchandiseID string, quantity int) error {
	lines, err := a.gateway.RawLines(ctx)
	if err != nil {
		return err
	}
	return a.gateway.PersistLines(ctx, SetLineQuantity(lines, merchandiseID, quantity))
}
