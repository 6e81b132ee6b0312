package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fluxur/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDexscreenerTokenMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/dex/tokens/MintA", r.URL.Path)
		if r.URL.Path != "/latest/dex/tokens/MintA" {
			_, _ = w.Write([]byte(`{"pairs":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"pairs":[{"baseToken":{"address":"MintA","name":" Fluxur ","symbol":"FLXR"},"info":{"imageUrl":"https://img"}}]}`))
	}))
	defer srv.Close()

	c := NewDexscreenerClient(config.SolanaConfig{DexscreenerURL: srv.URL + "/"})
	md, err := c.TokenMetadata(context.Background(), "MintA")
	require.NoError(t, err)
	assert.Equal(t, "Fluxur", md.Name)
	assert.Equal(t, "FLXR", md.Symbol)
	assert.Equal(t, "https://img", md.Image)
}

func TestOffChainImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"x","image":"https://ipfs.io/ipfs/img"}`))
	}))
	defer srv.Close()

	c := NewOffChainMetadataClient()
	img, err := c.Image(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://ipfs.io/ipfs/img", img)

	img, err = c.Image(context.Background(), "ipfs://abc")
	require.NoError(t, err)
	assert.Empty(t, img)
}
