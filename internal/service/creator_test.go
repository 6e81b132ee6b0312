package service

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/fluxur/backend/internal/client"
	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/solana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChain struct {
	oldest    string
	oldestErr error
	payer     string
	payerErr  error
	accounts  map[string][]byte
}

func (f *fakeChain) Cluster() string { return "mainnet-beta" }

func (f *fakeChain) OldestSignature(context.Context, string) (string, error) {
	return f.oldest, f.oldestErr
}

func (f *fakeChain) TransactionFeePayer(context.Context, string) (string, error) {
	return f.payer, f.payerErr
}

func (f *fakeChain) AccountData(_ context.Context, address string) ([]byte, error) {
	if data, ok := f.accounts[address]; ok {
		return data, nil
	}
	return nil, client.ErrAccountNotFound
}

type fakeDex struct {
	md  *model.TokenMetadata
	err error
}

func (f *fakeDex) TokenMetadata(context.Context, string) (*model.TokenMetadata, error) {
	return f.md, f.err
}

type fakeImageResolver map[string]string

func (f fakeImageResolver) Image(_ context.Context, uri string) (string, error) {
	if img, ok := f[uri]; ok {
		return img, nil
	}
	return "", errors.New("not found")
}

func metadataAccount(name, symbol, uri string) []byte {
	data := make([]byte, 65)
	for _, s := range []string{name, symbol, uri} {
		data = binary.LittleEndian.AppendUint32(data, uint32(len(s)))
		data = append(data, s...)
	}
	return data
}

func TestVerifyCreatorInputErrors(t *testing.T) {
	svc := NewCreatorService(&fakeChain{}, nil, nil, zap.NewNop())
	valid := newWallet(t).address

	cases := []struct {
		name string
		req  model.VerifyCreatorRequest
		want string
	}{
		{"missing mint", model.VerifyCreatorRequest{Wallet: valid}, "Missing mint address"},
		{"missing wallet", model.VerifyCreatorRequest{Mint: valid}, "Missing wallet address"},
		{"bad mint", model.VerifyCreatorRequest{Mint: "0OIl", Wallet: valid}, "Invalid address format"},
		{"bad wallet", model.VerifyCreatorRequest{Mint: valid, Wallet: "short"}, "Invalid address format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.VerifyCreator(context.Background(), tc.req)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.want, verr.Detail)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestVerifyCreatorChainFailures(t *testing.T) {
	mint := newWallet(t).address
	creator := newWallet(t).address

	cases := []struct {
		name  string
		chain *fakeChain
		want  string
	}{
		{"no history", &fakeChain{oldestErr: client.ErrNoTransactions}, "No transactions found for this mint"},
		{"rpc down", &fakeChain{oldestErr: errors.New("dial tcp")}, "Could not determine token creator"},
		{"tx missing", &fakeChain{oldest: "sig1", payerErr: client.ErrTxNotFound}, "Could not fetch oldest transaction"},
		{"other payer", &fakeChain{oldest: "sig1", payer: newWallet(t).address}, "Wallet is not the token creator (fee payer of mint transaction)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewCreatorService(tc.chain, nil, nil, zap.NewNop())
			res, err := svc.VerifyCreator(context.Background(), model.VerifyCreatorRequest{Mint: mint, Wallet: creator})
			require.NoError(t, err)
			assert.False(t, res.Verified)
			assert.Equal(t, tc.want, res.Error)
			assert.Equal(t, "mainnet-beta", res.Debug.Cluster)
		})
	}
}

func TestVerifyCreatorUsesOnChainMetadata(t *testing.T) {
	mintKey := newWallet(t)
	creator := newWallet(t).address
	pda, err := solana.MetadataAddress(mintKey.address)
	require.NoError(t, err)

	chain := &fakeChain{
		oldest:   "sig1",
		payer:    creator,
		accounts: map[string][]byte{pda: metadataAccount("Fluxur\x00\x00", "FLXR", "https://ipfs.io/ipfs/meta")},
	}
	dex := &fakeDex{md: &model.TokenMetadata{Name: "Other", Symbol: "OTH"}}
	images := fakeImageResolver{"https://ipfs.io/ipfs/meta": "https://ipfs.io/ipfs/img"}

	svc := NewCreatorService(chain, dex, images, zap.NewNop())
	res, err := svc.VerifyCreator(context.Background(), model.VerifyCreatorRequest{Mint: mintKey.address, Wallet: creator})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, "fee_payer", res.VerificationMethod)
	assert.Equal(t, "Fluxur", res.Name)
	assert.Equal(t, "FLXR", res.Symbol)
	assert.Equal(t, "https://ipfs.io/ipfs/img", res.Image)
	require.NotNil(t, res.Debug.DerivedCreator)
	assert.Equal(t, creator, *res.Debug.DerivedCreator)
	require.NotNil(t, res.Debug.OldestSig)
	assert.Equal(t, "sig1", *res.Debug.OldestSig)
}

func TestVerifyCreatorFallsBackToDexscreener(t *testing.T) {
	mint := newWallet(t).address
	creator := newWallet(t).address
	chain := &fakeChain{oldest: "sig1", payer: creator}

	svc := NewCreatorService(chain, &fakeDex{md: &model.TokenMetadata{Name: "Dex", Symbol: "DX", Image: "https://img"}}, nil, zap.NewNop())
	res, err := svc.VerifyCreator(context.Background(), model.VerifyCreatorRequest{Mint: mint, Wallet: creator})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, "Dex", res.Name)
	assert.Equal(t, "https://img", res.Image)

	svc = NewCreatorService(chain, &fakeDex{err: errors.New("429")}, nil, zap.NewNop())
	res, err = svc.VerifyCreator(context.Background(), model.VerifyCreatorRequest{Mint: mint, Wallet: creator})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Empty(t, res.Name)
}
