package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

func TestExistsLiveListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings/abc/exists", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"exists":true}`))
	}))
	defer srv.Close()

	c := NewListingServiceClient(srv.URL)
	exists, err := c.Exists(context.Background(), "abc")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsDeletedListingIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"exists":false}`))
	}))
	defer srv.Close()

	c := NewListingServiceClient(srv.URL)
	exists, err := c.Exists(context.Background(), "gone")

	require.NoError(t, err, "a deleted listing is steady-state data, not a fault")
	assert.False(t, exists)
}

func TestExistsServerFaultIsConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewListingServiceClient(srv.URL)
	_, err := c.Exists(context.Background(), "abc")

	require.Error(t, err)
	var be *domain.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, domain.ErrKindConnectivity, be.Kind)
}

func TestExistsUnreachableServiceIsConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewListingServiceClient(srv.URL)
	_, err := c.Exists(context.Background(), "abc")

	require.Error(t, err)
	assert.Equal(t, domain.ErrKindConnectivity, domain.KindOf(err))
}
