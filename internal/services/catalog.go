package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
)

const (
	algorithmsPath = "/api/algorithms"
	searchPath     = "/api/algorithms/search"
	byUserPath     = "/api/algorithms-by-user/"
	languagesPath  = "/api/available-programming-languages"
)

// CatalogService implements [Catalog] over an [APIService]. Every call carries the current credential.
type CatalogService struct {
	api *APIService
}

// NewCatalogService creates a catalog client on top of api.
func NewCatalogService(api *APIService) *CatalogService {
	return &CatalogService{api: api}
}

// ListAll returns every entry in the service's order.
func (c *CatalogService) ListAll(ctx context.Context) ([]models.CatalogEntry, error) {
	return c.list(ctx, Request{Method: http.MethodGet, Path: algorithmsPath, Auth: true})
}

// ListByOwner returns the entries submitted by userID.
func (c *CatalogService) ListByOwner(ctx context.Context, userID models.ID) ([]models.CatalogEntry, error) {
	if userID.IsZero() {
		return nil, shared.ErrNotAuthenticated
	}
	return c.list(ctx, Request{Method: http.MethodGet, Path: byUserPath + url.PathEscape(userID.String()), Auth: true})
}

// Search queries the search endpoint with the non-empty fields of q.
func (c *CatalogService) Search(ctx context.Context, q models.SearchQuery) ([]models.CatalogEntry, error) {
	return c.list(ctx, Request{Method: http.MethodGet, Path: searchPath, Query: BuildSearchParams(q), Auth: true})
}

// Get returns a single entry.
func (c *CatalogService) Get(ctx context.Context, id models.ID) (models.CatalogEntry, error) {
	if id.IsZero() {
		return models.CatalogEntry{}, fmt.Errorf("%w: entry id is required", shared.ErrInvalidArgument)
	}

	resp, err := c.api.Do(ctx, Request{Method: http.MethodGet, Path: algorithmsPath + "/" + url.PathEscape(id.String()), Auth: true})
	if err != nil {
		return models.CatalogEntry{}, err
	}
	return models.DecodeEntry(resp.Body)
}

// Create submits a new entry. The result must carry the id the service assigned.
func (c *CatalogService) Create(ctx context.Context, entry models.NewEntry) (models.CatalogEntry, error) {
	resp, err := c.api.Do(ctx, Request{Method: http.MethodPost, Path: algorithmsPath, Body: entry, Auth: true})
	if err != nil {
		return models.CatalogEntry{}, err
	}
	return models.DecodeEntry(resp.Body)
}

// Languages returns the programming languages the service accepts.
func (c *CatalogService) Languages(ctx context.Context) ([]string, error) {
	resp, err := c.api.Do(ctx, Request{Method: http.MethodGet, Path: languagesPath, Auth: true})
	if err != nil {
		return nil, err
	}
	return models.DecodeLanguages(resp.Body)
}

func (c *CatalogService) list(ctx context.Context, req Request) ([]models.CatalogEntry, error) {
	resp, err := c.api.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return models.DecodeEntries(resp.Body)
}
