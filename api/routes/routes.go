package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type Dependencies struct {
	Health     *controllers.HealthController
	Cart       *controllers.CartController
	Catalog    *controllers.CatalogController
	Revalidate *controllers.RevalidateController
	Logger     *logger.Logger
	CORS       config.CORSConfig
	Gatherer   prometheus.Gatherer
}

func New(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))

	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)

	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(deps.Logger))
		r.Get("/", deps.Cart.GetCart)
		r.Post("/lines", deps.Cart.AddLine)
		r.Patch("/lines/{merchandiseId}", deps.Cart.UpdateLine)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", deps.Catalog.ListProducts)
		r.Get("/{handle}", deps.Catalog.GetProduct)
		r.Get("/{handle}/recommendations", deps.Catalog.GetProductRecommendations)
	})

	r.Route("/collections", func(r chi.Router) {
		r.Get("/", deps.Catalog.ListCollections)
		r.Get("/{handle}", deps.Catalog.GetCollection)
		r.Get("/{handle}/products", deps.Catalog.ListCollectionProducts)
	})

	r.Route("/pages", func(r chi.Router) {
		r.Get("/", deps.Catalog.ListPages)
		r.Get("/{handle}", deps.Catalog.GetPage)
	})

	r.Get("/menu/{handle}", deps.Catalog.GetMenu)

	r.Post("/revalidate", deps.Revalidate.Revalidate)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
