package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/pkg/cache"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type RevalidateController struct {
	bus    cache.TagBus
	secret string
	logg   *logger.Logger
	now    func() time.Time
}

func NewRevalidateController(bus cache.TagBus, secret string, logg *logger.Logger) (*RevalidateController, error) {
	if bus == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "revalidate controller requires a bus")
	}
	if secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "revalidation secret is not configured")
	}
	return &RevalidateController{bus: bus, secret: secret, logg: logg, now: time.Now}, nil
}

// Revalidate bumps the named tag on the invalidation bus. Callers retry on
// their own; a bump is never replayed here.
func (c *RevalidateController) Revalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	secret := r.URL.Query().Get("secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(c.secret)) != 1 {
		responses.WriteError(ctx, c.logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid revalidation secret"))
		return
	}

	tag := r.URL.Query().Get("tag")
	if tag == "" {
		responses.WriteError(ctx, c.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "missing tag parameter"))
		return
	}

	if c.logg != nil {
		ctx = c.logg.WithTag(ctx, tag)
	}
	version, err := c.bus.Invalidate(ctx, tag)
	if err != nil {
		responses.WriteError(ctx, c.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidating tag"))
		return
	}

	if c.logg != nil {
		c.logg.Info(c.logg.WithField(ctx, "version", version), "tag.revalidated")
	}
	responses.WriteSuccess(w, map[string]any{
		"revalidated": true,
		"tag":         tag,
		"now":         c.now().UnixMilli(),
	})
}
