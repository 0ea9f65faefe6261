package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

func TestDecodeRefs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []domain.FavoriteRef
	}{
		{
			name: "valid set",
			raw:  `[{"listing_id":"A"},{"listing_id":"B"}]`,
			want: []domain.FavoriteRef{{ListingID: "A"}, {ListingID: "B"}},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []domain.FavoriteRef{},
		},
		{
			name: "corrupt value resets to empty set",
			raw:  `{"not":"an array"`,
			want: []domain.FavoriteRef{},
		},
		{
			name: "json null resets to empty set",
			raw:  `null`,
			want: []domain.FavoriteRef{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeRefs("dev-1", tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleRefFlipsMembership(t *testing.T) {
	set := []domain.FavoriteRef{{ListingID: "A"}}

	set = toggleRef(set, "B")
	assert.Equal(t, []domain.FavoriteRef{{ListingID: "A"}, {ListingID: "B"}}, set)

	set = toggleRef(set, "A")
	assert.Equal(t, []domain.FavoriteRef{{ListingID: "B"}}, set)

	set = toggleRef(set, "B")
	assert.Empty(t, set)
}

func TestToggleRefRoundTrip(t *testing.T) {
	original := []domain.FavoriteRef{{ListingID: "A"}}

	once := toggleRef(append([]domain.FavoriteRef{}, original...), "Z")
	twice := toggleRef(once, "Z")

	assert.Equal(t, original, twice, "toggling the same id twice restores the original set")
}

func TestDeviceKey(t *testing.T) {
	assert.Equal(t, "favorites:device:dev-42", deviceKey("dev-42"))
}
