package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type CatalogController struct {
	service catalog.Service
	logg    *logger.Logger
}

func NewCatalogController(service catalog.Service, logg *logger.Logger) (*CatalogController, error) {
	if service == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog controller requires a service")
	}
	return &CatalogController{service: service, logg: logg}, nil
}

func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	sortKey := r.URL.Query().Get("sort_key")
	reverse, _ := strconv.ParseBool(r.URL.Query().Get("reverse"))

	products, err := c.service.GetProducts(r.Context(), query, sortKey, reverse)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, products)
}

func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.GetProduct(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, product)
}

func (c *CatalogController) GetProductRecommendations(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.GetProduct(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	products, err := c.service.GetProductRecommendations(r.Context(), product.ID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, products)
}

func (c *CatalogController) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := c.service.GetCollections(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, collections)
}

func (c *CatalogController) GetCollection(w http.ResponseWriter, r *http.Request) {
	collection, err := c.service.GetCollection(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, collection)
}

func (c *CatalogController) ListCollectionProducts(w http.ResponseWriter, r *http.Request) {
	sortKey := r.URL.Query().Get("sort_key")
	reverse, _ := strconv.ParseBool(r.URL.Query().Get("reverse"))

	products, err := c.service.GetCollectionProducts(r.Context(), chi.URLParam(r, "handle"), sortKey, reverse)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, products)
}

func (c *CatalogController) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := c.service.GetPages(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, pages)
}

func (c *CatalogController) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := c.service.GetPage(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, page)
}

func (c *CatalogController) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := c.service.GetMenu(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, menu)
}
