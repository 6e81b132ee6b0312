package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fluxur/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcCall struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func rpcServer(t *testing.T, handle func(call rpcCall) any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call rpcCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": handle(call)})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOldestSignaturePaginates(t *testing.T) {
	var befores []string
	srv := rpcServer(t, func(call rpcCall) any {
		require.Equal(t, "getSignaturesForAddress", call.Method)
		var opts struct {
			Before string `json:"before"`
			Limit  int    `json:"limit"`
		}
		require.NoError(t, json.Unmarshal(call.Params[1], &opts))
		assert.Equal(t, signaturePageSize, opts.Limit)
		befores = append(befores, opts.Before)

		if opts.Before == "" {
			page := make([]SignatureInfo, signaturePageSize)
			for i := range page {
				page[i] = SignatureInfo{Signature: fmt.Sprintf("sig-%d", i)}
			}
			return page
		}
		return []SignatureInfo{{Signature: "sig-first-1"}, {Signature: "sig-first-0"}}
	})

	c := NewSolanaRPC(config.SolanaConfig{RPCURL: srv.URL})
	sig, err := c.OldestSignature(context.Background(), "Mint")
	require.NoError(t, err)
	assert.Equal(t, "sig-first-0", sig)
	assert.Equal(t, []string{"", fmt.Sprintf("sig-%d", signaturePageSize-1)}, befores)
}

func TestOldestSignatureEmpty(t *testing.T) {
	srv := rpcServer(t, func(rpcCall) any { return []SignatureInfo{} })
	c := NewSolanaRPC(config.SolanaConfig{RPCURL: srv.URL})
	_, err := c.OldestSignature(context.Background(), "Mint")
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestTransactionFeePayer(t *testing.T) {
	srv := rpcServer(t, func(call rpcCall) any {
		require.Equal(t, "getTransaction", call.Method)
		var sig string
		require.NoError(t, json.Unmarshal(call.Params[0], &sig))
		if sig == "missing" {
			return nil
		}
		return map[string]any{
			"transaction": map[string]any{
				"message": map[string]any{"accountKeys": []string{"Payer", "Mint"}},
			},
		}
	})
	c := NewSolanaRPC(config.SolanaConfig{RPCURL: srv.URL})

	payer, err := c.TransactionFeePayer(context.Background(), "sig")
	require.NoError(t, err)
	assert.Equal(t, "Payer", payer)

	_, err = c.TransactionFeePayer(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTxNotFound)
}

func TestAccountData(t *testing.T) {
	srv := rpcServer(t, func(call rpcCall) any {
		var addr string
		require.NoError(t, json.Unmarshal(call.Params[0], &addr))
		if addr == "none" {
			return map[string]any{"value": nil}
		}
		return map[string]any{"value": map[string]any{"data": []string{base64.StdEncoding.EncodeToString([]byte("abc")), "base64"}}}
	})
	c := NewSolanaRPC(config.SolanaConfig{RPCURL: srv.URL})

	data, err := c.AccountData(context.Background(), "acct")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	_, err = c.AccountData(context.Background(), "none")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRPCErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid param"}}`))
	}))
	defer srv.Close()

	c := NewSolanaRPC(config.SolanaConfig{RPCURL: srv.URL})
	_, err := c.GetSignaturesForAddress(context.Background(), "x", "", 10)
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32602, rpcErr.Code)
}

func TestCluster(t *testing.T) {
	assert.Equal(t, "devnet", NewSolanaRPC(config.SolanaConfig{RPCURL: "https://api.devnet.solana.com"}).Cluster())
	assert.Equal(t, "mainnet-beta", NewSolanaRPC(config.SolanaConfig{RPCURL: "https://rpc.example"}).Cluster())
}
