package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

type stubListingRepo struct {
	domain.ListingRepository
	existing  map[string]bool
	existsErr error
	searchFn  func(query string, limit, offset int) ([]domain.Listing, error)
}

func (s *stubListingRepo) Exists(listingID string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[listingID], nil
}

func (s *stubListingRepo) Search(query string, limit, offset int) ([]domain.Listing, error) {
	return s.searchFn(query, limit, offset)
}

func TestCheckListingLive(t *testing.T) {
	repo := &stubListingRepo{existing: map[string]bool{"abc": true}}
	h := NewCheckListingHandler(repo)

	exists, err := h.Handle(CheckListingQuery{ListingID: "abc"})

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCheckListingGoneIsFalseNotError(t *testing.T) {
	repo := &stubListingRepo{existing: map[string]bool{}}
	h := NewCheckListingHandler(repo)

	exists, err := h.Handle(CheckListingQuery{ListingID: "deleted"})

	require.NoError(t, err, "a missing listing is expected steady-state data")
	assert.False(t, exists)
}

func TestCheckListingRequiresID(t *testing.T) {
	h := NewCheckListingHandler(&stubListingRepo{})

	_, err := h.Handle(CheckListingQuery{})

	assert.Error(t, err)
}

func TestCheckListingSurfacesRepoFailure(t *testing.T) {
	repo := &stubListingRepo{existsErr: errors.New("connection refused")}
	h := NewCheckListingHandler(repo)

	_, err := h.Handle(CheckListingQuery{ListingID: "abc"})

	assert.Error(t, err)
}

func TestSearchListingsTrimsQuery(t *testing.T) {
	var gotQuery string
	repo := &stubListingRepo{searchFn: func(query string, limit, offset int) ([]domain.Listing, error) {
		gotQuery = query
		return []domain.Listing{{Title: "Bike"}}, nil
	}}
	h := NewSearchListingsHandler(repo)

	results, err := h.Handle(SearchListingsQuery{Query: "  bike  ", Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, "bike", gotQuery)
	assert.Len(t, results, 1)
}

func TestSearchListingsRejectsBlankQuery(t *testing.T) {
	h := NewSearchListingsHandler(&stubListingRepo{})

	_, err := h.Handle(SearchListingsQuery{Query: strings.Repeat(" ", 3)})

	assert.Error(t, err)
}
