//go:build wireinject
// +build wireinject

package listing

import (
	"database/sql"

	"github.com/google/wire"

	httpDelivery "github.com/troyan365/marketplace/internal/listing/delivery/http"
	"github.com/troyan365/marketplace/internal/listing/domain"
	"github.com/troyan365/marketplace/internal/listing/repository"
	"github.com/troyan365/marketplace/internal/listing/storage"
)

// ProvideListingRepository provides the listing repository
func ProvideListingRepository(db *sql.DB) domain.ListingRepository {
	return repository.NewPostgresListingRepository(db)
}

// RepositorySet wires the storage layer
var RepositorySet = wire.NewSet(
	ProvideListingRepository,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *sql.DB, blobs storage.BlobStore) (*httpDelivery.ListingHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewListingHandler,
	)
	return nil, nil
}
