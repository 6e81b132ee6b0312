// Solana JSON-RPC client.
//
// Environment:
//   - SOLANA_RPC_URL (default: https://api.mainnet-beta.solana.com)

package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fluxur/backend/internal/config"
)

const (
	signaturePageSize = 1000
	maxSignaturePages = 100
)

var (
	ErrNoTransactions  = errors.New("no transactions found for address")
	ErrTxNotFound      = errors.New("transaction not found")
	ErrAccountNotFound = errors.New("account not found")
)

// RPCError is a JSON-RPC error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type SolanaRPC struct {
	url        string
	httpClient *http.Client
	nextID     atomic.Int64
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type SignatureInfo struct {
	Signature string `json:"signature"`
	Slot      uint64 `json:"slot"`
}

func NewSolanaRPC(cfg config.SolanaConfig) *SolanaRPC {
	return &SolanaRPC{
		url: cfg.RPCURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Cluster names the cluster the RPC URL points at.
func (c *SolanaRPC) Cluster() string {
	if strings.Contains(c.url, "devnet") {
		return "devnet"
	}
	return "mainnet-beta"
}

func (c *SolanaRPC) call(ctx context.Context, method string, params []any, out any) error {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Service: "solana rpc", StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var envelope rpcResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Result, out)
}

func (c *SolanaRPC) GetSignaturesForAddress(ctx context.Context, address, before string, limit int) ([]SignatureInfo, error) {
	opts := map[string]any{"limit": limit}
	if before != "" {
		opts["before"] = before
	}
	var sigs []SignatureInfo
	if err := c.call(ctx, "getSignaturesForAddress", []any{address, opts}, &sigs); err != nil {
		return nil, err
	}
	return sigs, nil
}

// OldestSignature pages backwards through the address history and returns the
// earliest signature it can reach.
func (c *SolanaRPC) OldestSignature(ctx context.Context, address string) (string, error) {
	var oldest, before string
	for page := 0; page < maxSignaturePages; page++ {
		sigs, err := c.GetSignaturesForAddress(ctx, address, before, signaturePageSize)
		if err != nil {
			return "", err
		}
		if len(sigs) == 0 {
			break
		}
		oldest = sigs[len(sigs)-1].Signature
		before = oldest
		if len(sigs) < signaturePageSize {
			break
		}
	}
	if oldest == "" {
		return "", ErrNoTransactions
	}
	return oldest, nil
}

type transactionResult struct {
	Transaction struct {
		Message struct {
			AccountKeys []string `json:"accountKeys"`
		} `json:"message"`
	} `json:"transaction"`
}

// TransactionFeePayer returns the first account key of the transaction.
func (c *SolanaRPC) TransactionFeePayer(ctx context.Context, signature string) (string, error) {
	opts := map[string]any{
		"encoding":                       "json",
		"commitment":                     "confirmed",
		"maxSupportedTransactionVersion": 0,
	}
	var tx *transactionResult
	if err := c.call(ctx, "getTransaction", []any{signature, opts}, &tx); err != nil {
		return "", err
	}
	if tx == nil || len(tx.Transaction.Message.AccountKeys) == 0 {
		return "", ErrTxNotFound
	}
	return tx.Transaction.Message.AccountKeys[0], nil
}

type accountInfoResult struct {
	Value *struct {
		Data []string `json:"data"`
	} `json:"value"`
}

// AccountData returns the raw data of an account.
func (c *SolanaRPC) AccountData(ctx context.Context, address string) ([]byte, error) {
	opts := map[string]any{
		"encoding":   "base64",
		"commitment": "confirmed",
	}
	var info accountInfoResult
	if err := c.call(ctx, "getAccountInfo", []any{address, opts}, &info); err != nil {
		return nil, err
	}
	if info.Value == nil || len(info.Value.Data) == 0 {
		return nil, ErrAccountNotFound
	}
	return base64.StdEncoding.DecodeString(info.Value.Data[0])
}
