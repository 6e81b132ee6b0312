package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/model"
)

// DexscreenerClient looks up token names and images from Dexscreener pairs.
type DexscreenerClient struct {
	baseURL    string
	httpClient *http.Client
}

type dexTokensResponse struct {
	Pairs []struct {
		BaseToken struct {
			Address string `json:"address"`
			Name    string `json:"name"`
			Symbol  string `json:"symbol"`
		} `json:"baseToken"`
		Info *struct {
			ImageURL string `json:"imageUrl"`
		} `json:"info"`
	} `json:"pairs"`
}

func NewDexscreenerClient(cfg config.SolanaConfig) *DexscreenerClient {
	return &DexscreenerClient{
		baseURL: strings.TrimRight(cfg.DexscreenerURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// TokenMetadata returns the first pair's base token info. A token with no
// pairs yields an empty result and no error.
func (c *DexscreenerClient) TokenMetadata(ctx context.Context, mint string) (*model.TokenMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest/dex/tokens/"+url.PathEscape(mint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to dexscreener: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Service: "dexscreener", StatusCode: resp.StatusCode}
	}

	var out dexTokensResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode dexscreener response: %w", err)
	}
	if len(out.Pairs) == 0 {
		return &model.TokenMetadata{}, nil
	}

	pair := out.Pairs[0]
	md := &model.TokenMetadata{
		Name:   strings.TrimSpace(pair.BaseToken.Name),
		Symbol: strings.TrimSpace(pair.BaseToken.Symbol),
	}
	if pair.Info != nil {
		md.Image = pair.Info.ImageURL
	}
	return md, nil
}
