package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	constraint := NewBackendError(ErrKindConstraint, "favorites.add", errors.New("duplicate key"))
	assert.Equal(t, ErrKindConstraint, KindOf(constraint))

	wrapped := fmt.Errorf("toggling: %w", constraint)
	assert.Equal(t, ErrKindConstraint, KindOf(wrapped), "classification must survive wrapping")

	assert.Equal(t, ErrKindConnectivity, KindOf(errors.New("plain")), "unclassified errors default to connectivity")
}

func TestIsConstraint(t *testing.T) {
	assert.True(t, IsConstraint(NewBackendError(ErrKindConstraint, "op", errors.New("dup"))))
	assert.False(t, IsConstraint(NewBackendError(ErrKindConnectivity, "op", errors.New("down"))))
	assert.False(t, IsConstraint(errors.New("plain")))
}

func TestBackendErrorMessage(t *testing.T) {
	err := NewBackendError(ErrKindNotFound, "favorites.list", errors.New("no rows"))
	assert.Equal(t, "favorites.list: not_found: no rows", err.Error())
}

func TestRefSet(t *testing.T) {
	set := RefSet([]FavoriteRef{{ListingID: "A"}, {ListingID: "B"}, {ListingID: "A"}})
	assert.Len(t, set, 2)
	_, ok := set["A"]
	assert.True(t, ok)
}
