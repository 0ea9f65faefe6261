//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/troyan365/marketplace/internal/favorite/client"
	httpDelivery "github.com/troyan365/marketplace/internal/favorite/delivery/http"
	"github.com/troyan365/marketplace/internal/favorite/domain"
	"github.com/troyan365/marketplace/internal/favorite/repository"
	"github.com/troyan365/marketplace/internal/favorite/usecase/command"
)

// ProvideFavoriteRepository provides the favorite repository with tracing
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepositoryWithTracing(
		repository.NewGormFavoriteRepository(db),
	)
}

// ProvideDeviceFavoriteStore provides the device favorite store
func ProvideDeviceFavoriteStore(rdb *redis.Client) domain.DeviceFavoriteStore {
	return repository.NewRedisDeviceStore(rdb)
}

// ProvideListingChecker provides the listing existence client
func ProvideListingChecker(listingServiceURL string) domain.ListingChecker {
	return client.NewListingServiceClient(listingServiceURL)
}

// RepositorySet wires the storage layer
var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
	ProvideDeviceFavoriteStore,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, rdb *redis.Client, listingServiceURL string, publisher command.ReconcilePublisher) (*httpDelivery.FavoriteHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideListingChecker,
		httpDelivery.NewFavoriteHandler,
	)
	return nil, nil
}
