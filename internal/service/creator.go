package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fluxur/backend/internal/client"
	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/solana"
	"go.uber.org/zap"
)

type ChainReader interface {
	Cluster() string
	OldestSignature(ctx context.Context, address string) (string, error)
	TransactionFeePayer(ctx context.Context, signature string) (string, error)
	AccountData(ctx context.Context, address string) ([]byte, error)
}

type TokenDirectory interface {
	TokenMetadata(ctx context.Context, mint string) (*model.TokenMetadata, error)
}

type ImageResolver interface {
	Image(ctx context.Context, uri string) (string, error)
}

// CreatorService decides whether a wallet created a token. The creator is the
// fee payer of the mint's oldest transaction.
type CreatorService struct {
	chain    ChainReader
	dex      TokenDirectory
	offchain ImageResolver
	log      *zap.Logger
}

func NewCreatorService(chain ChainReader, dex TokenDirectory, offchain ImageResolver, log *zap.Logger) *CreatorService {
	return &CreatorService{chain: chain, dex: dex, offchain: offchain, log: log}
}

func (s *CreatorService) VerifyCreator(ctx context.Context, req model.VerifyCreatorRequest) (*model.VerifyCreatorResponse, error) {
	mint := strings.TrimSpace(req.Mint)
	wallet := strings.TrimSpace(req.Wallet)
	if mint == "" {
		return nil, &ValidationError{Detail: "Missing mint address"}
	}
	if wallet == "" {
		return nil, &ValidationError{Detail: "Missing wallet address"}
	}
	if _, err := solana.ParsePublicKey(mint); err != nil {
		return nil, &ValidationError{Detail: "Invalid address format"}
	}
	if _, err := solana.ParsePublicKey(wallet); err != nil {
		return nil, &ValidationError{Detail: "Invalid address format"}
	}

	out := &model.VerifyCreatorResponse{
		Debug: model.VerifyCreatorDebug{Mint: mint, Cluster: s.chain.Cluster(), Wallet: wallet},
	}

	sig, err := s.chain.OldestSignature(ctx, mint)
	if err != nil {
		out.Error = "Could not determine token creator"
		if errors.Is(err, client.ErrNoTransactions) {
			out.Error = "No transactions found for this mint"
		} else {
			s.log.Warn("oldest signature lookup failed", zap.String("mint", mint), zap.Error(err))
		}
		return out, nil
	}
	out.Debug.OldestSig = &sig

	payer, err := s.chain.TransactionFeePayer(ctx, sig)
	if err != nil {
		s.log.Warn("fee payer lookup failed", zap.String("mint", mint), zap.String("signature", sig), zap.Error(err))
		out.Error = "Could not fetch oldest transaction"
		return out, nil
	}
	out.Debug.DerivedCreator = &payer

	if payer != wallet {
		out.Error = "Wallet is not the token creator (fee payer of mint transaction)"
		return out, nil
	}

	md := s.tokenMetadata(ctx, mint)
	out.Verified = true
	out.VerificationMethod = "fee_payer"
	out.Name = md.Name
	out.Symbol = md.Symbol
	out.Image = md.Image
	return out, nil
}

// tokenMetadata prefers the on-chain Metaplex account and falls back to
// Dexscreener. Lookup failures give empty metadata.
func (s *CreatorService) tokenMetadata(ctx context.Context, mint string) model.TokenMetadata {
	if md, ok := s.onChainMetadata(ctx, mint); ok {
		return md
	}
	if s.dex != nil {
		md, err := s.dex.TokenMetadata(ctx, mint)
		if err != nil {
			s.log.Debug("dexscreener lookup failed", zap.String("mint", mint), zap.Error(err))
		} else if md.Name != "" || md.Symbol != "" {
			return *md
		}
	}
	return model.TokenMetadata{}
}

func (s *CreatorService) onChainMetadata(ctx context.Context, mint string) (model.TokenMetadata, bool) {
	addr, err := solana.MetadataAddress(mint)
	if err != nil {
		return model.TokenMetadata{}, false
	}
	data, err := s.chain.AccountData(ctx, addr)
	if err != nil {
		return model.TokenMetadata{}, false
	}
	parsed, err := solana.ParseMetadata(data)
	if err != nil || (parsed.Name == "" && parsed.Symbol == "") {
		return model.TokenMetadata{}, false
	}

	md := model.TokenMetadata{Name: parsed.Name, Symbol: parsed.Symbol}
	if s.offchain != nil && parsed.URI != "" {
		if image, err := s.offchain.Image(ctx, parsed.URI); err == nil {
			md.Image = image
		}
	}
	return md, true
}
