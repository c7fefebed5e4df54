package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type CartController struct {
	gateway *cart.Gateway
	actions *cart.Actions
	logg    *logger.Logger
}

func NewCartController(gateway *cart.Gateway, actions *cart.Actions, logg *logger.Logger) (*CartController, error) {
	if gateway == nil || actions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart controller requires gateway and actions")
	}
	return &CartController{gateway: gateway, actions: actions, logg: logg}, nil
}

type addLineRequest struct {
	MerchandiseID string `json:"merchandiseId" validate:"required"`
}

type updateLineRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// GetCart returns the hydrated cart for the session. A session without a cart
// cookie, or whose persisted cart no longer exists, gets a null data payload.
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hydrated, err := c.gateway.FetchCart(ctx, middleware.CartID(ctx))
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}
	if hydrated == nil {
		responses.WriteSuccess(w, nil)
		return
	}
	responses.WriteSuccess(w, hydrated)
}

// AddLine merges one unit of the given merchandise into the persisted cart,
// minting a cart cookie when the session has none.
func (c *CartController) AddLine(w http.ResponseWriter, r *http.Request) {
	var body addLineRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	ctx, cartID := middleware.EnsureCartCookie(w, r)
	if c.logg != nil {
		ctx = c.logg.WithCartID(ctx, cartID)
	}

	if err := c.actions.AddItem(ctx, body.MerchandiseID); err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	hydrated, err := c.gateway.FetchCart(ctx, cartID)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, hydrated)
}

// UpdateLine sets the absolute quantity for a line. Quantity zero removes it.
func (c *CartController) UpdateLine(w http.ResponseWriter, r *http.Request) {
	merchandiseID := chi.URLParam(r, "merchandiseId")
	if merchandiseID == "" {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "merchandiseId is required"))
		return
	}

	var body updateLineRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	ctx, cartID := middleware.EnsureCartCookie(w, r)
	if c.logg != nil {
		ctx = c.logg.WithCartID(ctx, cartID)
	}

	if err := c.actions.UpdateItemQuantity(ctx, merchandiseID, *body.Quantity); err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}

	hydrated, err := c.gateway.FetchCart(ctx, cartID)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, hydrated)
}
