package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OffChainMetadataClient reads the JSON document a token's metadata URI
// points to.
type OffChainMetadataClient struct {
	httpClient *http.Client
}

func NewOffChainMetadataClient() *OffChainMetadataClient {
	return &OffChainMetadataClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Image returns the "image" field of the document at uri. Only http(s) URIs
// are fetched; anything else yields "".
func (c *OffChainMetadataClient) Image(ctx context.Context, uri string) (string, error) {
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		return "", nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch metadata uri: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Service: "metadata uri", StatusCode: resp.StatusCode}
	}

	var doc struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBody)).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to decode metadata document: %w", err)
	}
	return doc.Image, nil
}
