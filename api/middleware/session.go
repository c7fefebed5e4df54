package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// CartCookieName is the cookie that pins a browser session to its cart.
const CartCookieName = "cartId"

type cartIDKey struct{}

// CartID returns the cart identifier bound to the request, or "" when the
// session has no cart yet.
func CartID(ctx context.Context) string {
	id, _ := ctx.Value(cartIDKey{}).(string)
	return id
}

// WithCartID is used by handlers and tests to seed a cart id directly.
func WithCartID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cartIDKey{}, id)
}

// CartSession reads the cart cookie into the request context. A missing or
// empty cookie means the session has no cart; handlers that mutate the cart
// mint one via EnsureCartCookie.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if cookie, err := r.Cookie(CartCookieName); err == nil && cookie.Value != "" {
				ctx = WithCartID(ctx, cookie.Value)
				if logg != nil {
					ctx = logg.WithCartID(ctx, cookie.Value)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EnsureCartCookie returns the session's cart id, minting a fresh one and
// setting the cookie when the session has none.
func EnsureCartCookie(w http.ResponseWriter, r *http.Request) (context.Context, string) {
	ctx := r.Context()
	if id := CartID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return WithCartID(ctx, id), id
}
