package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

type fakeListingRepo struct {
	listings map[string]*domain.Listing
	nextID   uint
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*domain.Listing{}, nextID: 1}
}

func (f *fakeListingRepo) Create(listing *domain.Listing) error {
	listing.ID = f.nextID
	f.nextID++
	f.listings[listing.ListingID] = listing
	return nil
}

func (f *fakeListingRepo) FindByListingID(listingID string) (*domain.Listing, error) {
	if l, ok := f.listings[listingID]; ok {
		return l, nil
	}
	return nil, errors.New("listing not found")
}

func (f *fakeListingRepo) FindLatest(limit int) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range f.listings {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeListingRepo) Search(query string, limit, offset int) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range f.listings {
		if strings.Contains(strings.ToLower(l.Title), strings.ToLower(query)) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) FindByCreator(creatorID uint, limit, offset int) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range f.listings {
		if l.CreatorID == creatorID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Update(listing *domain.Listing) error {
	if _, ok := f.listings[listing.ListingID]; !ok {
		return errors.New("listing not found")
	}
	f.listings[listing.ListingID] = listing
	return nil
}

func (f *fakeListingRepo) Delete(listingID string) error {
	if _, ok := f.listings[listingID]; !ok {
		return errors.New("listing not found")
	}
	delete(f.listings, listingID)
	return nil
}

func (f *fakeListingRepo) Exists(listingID string) (bool, error) {
	_, ok := f.listings[listingID]
	return ok, nil
}

func (f *fakeListingRepo) Count() (int64, error) {
	return int64(len(f.listings)), nil
}

func TestCreateListing(t *testing.T) {
	repo := newFakeListingRepo()
	h := NewCreateListingHandler(repo)

	listing, err := h.Handle(CreateListingCommand{
		Title:       "Mountain bike",
		Description: "Barely used",
		PhoneNumber: "+77001234567",
		CreatorID:   3,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, listing.ListingID, "every listing gets a stable public identifier")
	assert.Equal(t, uint(3), listing.CreatorID)

	stored, err := repo.FindByListingID(listing.ListingID)
	require.NoError(t, err)
	assert.Equal(t, "Mountain bike", stored.Title)
}

func TestCreateListingValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateListingCommand
	}{
		{"missing title", CreateListingCommand{PhoneNumber: "+77001234567", CreatorID: 1}},
		{"missing phone", CreateListingCommand{Title: "Bike", CreatorID: 1}},
		{"missing creator", CreateListingCommand{Title: "Bike", PhoneNumber: "+77001234567"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCreateListingHandler(newFakeListingRepo())
			_, err := h.Handle(tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestCreateListingUniqueIdentifiers(t *testing.T) {
	repo := newFakeListingRepo()
	h := NewCreateListingHandler(repo)

	first, err := h.Handle(CreateListingCommand{Title: "A", PhoneNumber: "1", CreatorID: 1})
	require.NoError(t, err)
	second, err := h.Handle(CreateListingCommand{Title: "B", PhoneNumber: "2", CreatorID: 1})
	require.NoError(t, err)

	assert.NotEqual(t, first.ListingID, second.ListingID)
}
