package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/troyan365/marketplace/internal/favorite/domain"
	"github.com/troyan365/marketplace/pkg/logger"
)

const deviceKeyPrefix = "favorites:device:"

// RedisDeviceStore keeps per-device favorite sets as a single JSON array
// value. Every mutation rewrites the whole value, so the last writer wins and
// the stored set is always well formed after a successful write.
type RedisDeviceStore struct {
	client *redis.Client
}

// NewRedisDeviceStore creates a new Redis-backed device favorite store
func NewRedisDeviceStore(client *redis.Client) *RedisDeviceStore {
	return &RedisDeviceStore{client: client}
}

func deviceKey(deviceID string) string {
	return deviceKeyPrefix + deviceID
}

// ReadAll returns the device's favorite set. A missing key and an unreadable
// value both decode to the empty set; only transport faults are errors.
func (s *RedisDeviceStore) ReadAll(ctx context.Context, deviceID string) ([]domain.FavoriteRef, error) {
	raw, err := s.client.Get(ctx, deviceKey(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.FavoriteRef{}, nil
	}
	if err != nil {
		return nil, domain.NewBackendError(domain.ErrKindConnectivity, "device_favorites.read", err)
	}
	return decodeRefs(deviceID, raw), nil
}

// Toggle flips the listing's membership in the device set and persists the
// result, returning the new set.
func (s *RedisDeviceStore) Toggle(ctx context.Context, deviceID, listingID string) ([]domain.FavoriteRef, error) {
	refs, err := s.ReadAll(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	refs = toggleRef(refs, listingID)

	payload, err := json.Marshal(refs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode device favorites: %w", err)
	}
	if err := s.client.Set(ctx, deviceKey(deviceID), payload, 0).Err(); err != nil {
		return nil, domain.NewBackendError(domain.ErrKindConnectivity, "device_favorites.write", err)
	}
	return refs, nil
}

// decodeRefs tolerates corrupt stored values: the device set is a cache of
// user intent, so losing it beats refusing to serve.
func decodeRefs(deviceID, raw string) []domain.FavoriteRef {
	var refs []domain.FavoriteRef
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		logger.Logger.Warn().
			Str("device_id", deviceID).
			Err(err).
			Msg("Corrupt device favorites value, resetting to empty set")
		return []domain.FavoriteRef{}
	}
	if refs == nil {
		refs = []domain.FavoriteRef{}
	}
	return refs
}

func toggleRef(refs []domain.FavoriteRef, listingID string) []domain.FavoriteRef {
	for i, ref := range refs {
		if ref.ListingID == listingID {
			return append(refs[:i], refs[i+1:]...)
		}
	}
	return append(refs, domain.FavoriteRef{ListingID: listingID})
}
