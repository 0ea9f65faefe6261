package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

// ListingServiceClient checks listing existence against the listing service
type ListingServiceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewListingServiceClient creates a new listing service client
func NewListingServiceClient(baseURL string) *ListingServiceClient {
	return &ListingServiceClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Second,
		},
	}
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// Exists reports whether the listing is still live. A deleted or unknown
// listing yields (false, nil); only transport and server faults are errors,
// so callers can tell "gone" from "unknown".
func (c *ListingServiceClient) Exists(ctx context.Context, listingID string) (bool, error) {
	url := fmt.Sprintf("%s/listings/%s/exists", c.baseURL, listingID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, domain.NewBackendError(domain.ErrKindConnectivity, "listings.exists", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, domain.NewBackendError(domain.ErrKindConnectivity, "listings.exists", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, domain.NewBackendError(domain.ErrKindConnectivity, "listings.exists",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body existsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, domain.NewBackendError(domain.ErrKindConnectivity, "listings.exists", err)
	}
	return body.Exists, nil
}
