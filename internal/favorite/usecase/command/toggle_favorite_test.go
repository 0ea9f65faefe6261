package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavoriteAddsWhenAbsent(t *testing.T) {
	remote := newFakeRemote()
	h := NewToggleFavoriteHandler(remote)

	favorited, err := h.Handle(context.Background(), ToggleFavoriteCommand{UserID: 1, ListingID: "A"})

	require.NoError(t, err)
	assert.True(t, favorited)
	assert.True(t, remote.has("A"))
}

func TestToggleFavoriteRemovesWhenPresent(t *testing.T) {
	remote := newFakeRemote("A")
	h := NewToggleFavoriteHandler(remote)

	favorited, err := h.Handle(context.Background(), ToggleFavoriteCommand{UserID: 1, ListingID: "A"})

	require.NoError(t, err)
	assert.False(t, favorited)
	assert.False(t, remote.has("A"))
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	remote := newFakeRemote()
	h := NewToggleFavoriteHandler(remote)
	ctx := context.Background()

	favorited, err := h.Handle(ctx, ToggleFavoriteCommand{UserID: 1, ListingID: "A"})
	require.NoError(t, err)
	require.True(t, favorited)

	favorited, err = h.Handle(ctx, ToggleFavoriteCommand{UserID: 1, ListingID: "A"})
	require.NoError(t, err)
	assert.False(t, favorited, "two toggles must return to the original state")
	assert.False(t, remote.has("A"))
}

func TestToggleFavoriteLostRaceStillFavorited(t *testing.T) {
	remote := newFakeRemote()
	remote.failAdd["A"] = remoteConstraintErr()
	h := NewToggleFavoriteHandler(remote)

	favorited, err := h.Handle(context.Background(), ToggleFavoriteCommand{UserID: 1, ListingID: "A"})

	require.NoError(t, err)
	assert.True(t, favorited, "a duplicate insert means another writer already favorited it")
}

func TestToggleFavoriteSurfacesListFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.listErr = connectivityErr("favorites.list")
	h := NewToggleFavoriteHandler(remote)

	_, err := h.Handle(context.Background(), ToggleFavoriteCommand{UserID: 1, ListingID: "A"})

	assert.Error(t, err)
	assert.Zero(t, remote.addCount())
}
