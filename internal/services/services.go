// package services defines the interfaces for talking to the algorithm catalog over HTTP
package services

import (
	"context"

	"github.com/desertthunder/algox/internal/models"
)

// Catalog defines the read and create operations of the catalog service.
//
// Update and delete exist on the service but are not part of this client.
type Catalog interface {
	// ListAll retrieves every entry.
	ListAll(ctx context.Context) ([]models.CatalogEntry, error)

	// ListByOwner retrieves the entries submitted by a user.
	ListByOwner(ctx context.Context, userID models.ID) ([]models.CatalogEntry, error)

	// Search retrieves entries matching the non-empty fields of the query.
	Search(ctx context.Context, q models.SearchQuery) ([]models.CatalogEntry, error)

	// Get retrieves a single entry by id.
	Get(ctx context.Context, id models.ID) (models.CatalogEntry, error)

	// Create submits a new entry and returns it with its assigned id.
	Create(ctx context.Context, entry models.NewEntry) (models.CatalogEntry, error)

	// Languages lists the accepted programming languages.
	Languages(ctx context.Context) ([]string, error)
}

// Authenticator defines the unauthenticated account operations.
type Authenticator interface {
	Register(ctx context.Context, in models.RegisterInput) error
	Login(ctx context.Context, in models.LoginInput) (models.Credential, error)
	ForgotPassword(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, in models.ResetInput) error
}

var (
	_ Catalog       = (*CatalogService)(nil)
	_ Authenticator = (*AuthService)(nil)
)
