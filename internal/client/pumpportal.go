// PumpPortal client: builds create transactions through trade-local and
// uploads token metadata to the pump.fun IPFS endpoint.
//
// Environment:
//   - PUMP_TRADE_URL (default: https://pumpportal.fun/api/trade-local)
//   - PUMP_IPFS_URL (default: https://pump.fun/api/ipfs)

package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/model"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

const maxUpstreamBody = 4 << 20

// StatusError is a non-2xx upstream answer.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

var ErrUnexpectedPayload = errors.New("unexpected upstream payload")

type PumpPortalClient struct {
	tradeURL   string
	ipfsURL    string
	httpClient *http.Client
}

type CreateTokenTx struct {
	PublicKey   string
	Mint        string
	Name        string
	Symbol      string
	MetadataURI string
	Amount      decimal.Decimal
	Slippage    decimal.Decimal
	PriorityFee decimal.Decimal
	Pool        string
}

type tradeLocalRequest struct {
	PublicKey        string             `json:"publicKey"`
	Action           string             `json:"action"`
	TokenMetadata    tradeLocalMetadata `json:"tokenMetadata"`
	Mint             string             `json:"mint"`
	DenominatedInSol string             `json:"denominatedInSol"`
	Amount           json.Number        `json:"amount"`
	Slippage         json.Number        `json:"slippage"`
	PriorityFee      json.Number        `json:"priorityFee"`
	Pool             string             `json:"pool"`
}

type tradeLocalMetadata struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

type tradeLocalObject struct {
	EncodedTx *string `json:"encodedTx"`
	Encoding  string  `json:"encoding"`
	Tx        *string `json:"tx"`
}

type IPFSUpload struct {
	MetadataURI string
	ImageURL    string
}

type ipfsResponse struct {
	MetadataURI string `json:"metadataUri"`
	Metadata    struct {
		Image string `json:"image"`
	} `json:"metadata"`
}

func NewPumpPortalClient(cfg config.PumpConfig) *PumpPortalClient {
	return &PumpPortalClient{
		tradeURL: cfg.TradeURL,
		ipfsURL:  cfg.IPFSURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BuildCreateTransaction asks trade-local for an unsigned create transaction
// and returns its serialized bytes.
func (c *PumpPortalClient) BuildCreateTransaction(ctx context.Context, in CreateTokenTx) ([]byte, error) {
	payload, err := json.Marshal(tradeLocalRequest{
		PublicKey: in.PublicKey,
		Action:    "create",
		TokenMetadata: tradeLocalMetadata{
			Name:   in.Name,
			Symbol: in.Symbol,
			URI:    in.MetadataURI,
		},
		Mint:             in.Mint,
		DenominatedInSol: "true",
		Amount:           json.Number(in.Amount.String()),
		Slippage:         json.Number(in.Slippage.String()),
		PriorityFee:      json.Number(in.PriorityFee.String()),
		Pool:             in.Pool,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trade request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tradeURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to pumpportal: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read pumpportal response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Service: "pumpportal", StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	return decodeTradeLocal(resp.Header.Get("Content-Type"), body)
}

// decodeTradeLocal accepts the shapes trade-local is known to return: a JSON
// array of base58 transactions, a JSON object carrying encodedTx or tx, or the
// raw transaction bytes.
func decodeTradeLocal(contentType string, body []byte) ([]byte, error) {
	if !strings.Contains(contentType, "application/json") {
		if len(body) == 0 {
			return nil, ErrUnexpectedPayload
		}
		return body, nil
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var txs []string
		if err := json.Unmarshal(trimmed, &txs); err != nil || len(txs) == 0 {
			return nil, ErrUnexpectedPayload
		}
		return decodeBase58(txs[0])
	}

	var obj tradeLocalObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, ErrUnexpectedPayload
	}
	switch {
	case obj.EncodedTx != nil && obj.Encoding == "base58":
		return decodeBase58(*obj.EncodedTx)
	case obj.EncodedTx != nil:
		return decodeBase64(*obj.EncodedTx)
	case obj.Tx != nil:
		return decodeBase64(*obj.Tx)
	}
	return nil, ErrUnexpectedPayload
}

func decodeBase58(s string) ([]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) == 0 {
		return nil, ErrUnexpectedPayload
	}
	return raw, nil
}

func decodeBase64(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(raw) == 0 {
		return nil, ErrUnexpectedPayload
	}
	return raw, nil
}

// UploadMetadata forwards the image and token fields to the IPFS endpoint.
func (c *PumpPortalClient) UploadMetadata(ctx context.Context, in model.TokenMetadataUpload) (*IPFSUpload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, in.FileName))
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(in.File); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}

	fields := [][2]string{
		{"name", in.Name},
		{"symbol", in.Symbol},
		{"description", in.Description},
		{"twitter", in.Twitter},
		{"telegram", in.Telegram},
		{"website", in.Website},
		{"showName", "true"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ipfsURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to ipfs: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read ipfs response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Service: "ipfs", StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var out ipfsResponse
	if err := json.Unmarshal(body, &out); err != nil || out.MetadataURI == "" {
		return nil, ErrUnexpectedPayload
	}
	return &IPFSUpload{MetadataURI: out.MetadataURI, ImageURL: out.Metadata.Image}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
