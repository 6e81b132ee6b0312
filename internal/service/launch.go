package service

import (
	"context"
	"encoding/base64"
	"mime"
	"path"
	"strings"

	"github.com/fluxur/backend/internal/client"
	"github.com/fluxur/backend/internal/events"
	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/solana"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultPool = "pump"

var (
	defaultAmount      = decimal.RequireFromString("0.1")
	defaultSlippage    = decimal.NewFromInt(10)
	defaultPriorityFee = decimal.RequireFromString("0.0005")
)

type TxBuilder interface {
	BuildCreateTransaction(ctx context.Context, in client.CreateTokenTx) ([]byte, error)
}

type MetadataUploader interface {
	UploadMetadata(ctx context.Context, in model.TokenMetadataUpload) (*client.IPFSUpload, error)
}

type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type LaunchService struct {
	vanity      *VanityService
	builder     TxBuilder
	uploader    MetadataUploader
	images      ImageStore
	commitments CommitmentStore
	events      events.Publisher
	log         *zap.Logger
}

// NewLaunchService wires the launch flow. images may be nil when archiving is
// disabled.
func NewLaunchService(vanity *VanityService, builder TxBuilder, uploader MetadataUploader, images ImageStore, commitments CommitmentStore, pub events.Publisher, log *zap.Logger) *LaunchService {
	return &LaunchService{
		vanity:      vanity,
		builder:     builder,
		uploader:    uploader,
		images:      images,
		commitments: commitments,
		events:      pub,
		log:         log,
	}
}

type createTxInput struct {
	publicKey   string
	name        string
	symbol      string
	metadataURI string
	website     string
	twitter     string
	telegram    string
	imageURL    string
	amount      decimal.Decimal
	slippage    decimal.Decimal
	priorityFee decimal.Decimal
	pool        string
}

func validateCreateTx(req model.CreateTxRequest) (createTxInput, error) {
	in := createTxInput{
		publicKey:   strings.TrimSpace(req.PublicKey),
		name:        strings.TrimSpace(req.Name),
		symbol:      strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(req.Symbol), "$")),
		metadataURI: strings.TrimSpace(req.MetadataURI),
		website:     strings.TrimSpace(req.Website),
		twitter:     strings.TrimSpace(req.Twitter),
		telegram:    strings.TrimSpace(req.Telegram),
		imageURL:    strings.TrimSpace(req.ImageURL),
		amount:      orDefault(req.Amount, defaultAmount),
		slippage:    orDefault(req.Slippage, defaultSlippage),
		priorityFee: orDefault(req.PriorityFee, defaultPriorityFee),
		pool:        strings.TrimSpace(req.Pool),
	}
	if in.pool == "" {
		in.pool = defaultPool
	}

	var problems []string
	if in.name == "" {
		problems = append(problems, "Coin name is required")
	}
	if in.symbol == "" {
		problems = append(problems, "Ticker is required")
	}
	if in.metadataURI == "" {
		problems = append(problems, "Metadata URI is required")
	}
	if in.publicKey == "" {
		problems = append(problems, "Wallet public key is required")
	} else if _, err := solana.ParsePublicKey(in.publicKey); err != nil {
		problems = append(problems, "Invalid wallet public key")
	}
	if in.amount.IsNegative() {
		problems = append(problems, "Invalid amount")
	}
	if in.slippage.IsNegative() {
		problems = append(problems, "Invalid slippage")
	}
	if in.priorityFee.IsNegative() {
		problems = append(problems, "Invalid priority fee")
	}
	if in.pool != defaultPool {
		problems = append(problems, "Invalid pool")
	}

	if len(problems) > 0 {
		return in, &ValidationError{Detail: strings.Join(problems, ". ")}
	}
	return in, nil
}

func orDefault(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

// CreateTransaction builds a create transaction on a reserved vanity mint and
// signs it with the mint key. The mint stays reserved on success; any failure
// before that returns it to the pool.
func (s *LaunchService) CreateTransaction(ctx context.Context, user *model.AuthUser, req model.CreateTxRequest) (*model.CreateTxResponse, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}
	in, err := validateCreateTx(req)
	if err != nil {
		return nil, err
	}

	lease, err := s.vanity.Acquire(ctx, user)
	if err != nil {
		return nil, err
	}
	defer lease.Release(ctx)

	raw, err := s.builder.BuildCreateTransaction(ctx, client.CreateTokenTx{
		PublicKey:   in.publicKey,
		Mint:        lease.PublicKey(),
		Name:        in.name,
		Symbol:      in.symbol,
		MetadataURI: in.metadataURI,
		Amount:      in.amount,
		Slippage:    in.slippage,
		PriorityFee: in.priorityFee,
		Pool:        in.pool,
	})
	if err != nil {
		s.log.Warn("create transaction build failed", zap.String("mint", lease.PublicKey()), zap.Error(err))
		return nil, &UserError{Kind: ErrUpstream, Message: "Failed to build transaction. Please try again.", Cause: err}
	}

	signed, err := solana.SignTransaction(raw, lease.Key())
	if err != nil {
		s.log.Error("create transaction sign failed", zap.String("mint", lease.PublicKey()), zap.Error(err))
		return nil, &UserError{Kind: ErrInternal, Message: "Failed to sign transaction. Please try again.", Cause: err}
	}

	commitment := model.Commitment{
		Mint:          lease.PublicKey(),
		Name:          in.name,
		Symbol:        in.symbol,
		CreatorWallet: in.publicKey,
		EscrowAddress: in.publicKey,
		CustodyWallet: in.publicKey,
		PayoutWallet:  in.publicKey,
		MetadataURI:   in.metadataURI,
		ImageURL:      optional(in.imageURL),
		Website:       optional(in.website),
		Twitter:       optional(in.twitter),
		Telegram:      optional(in.telegram),
	}
	if err := s.commitments.UpsertCommitment(ctx, commitment); err != nil {
		s.log.Error("commitment upsert failed", zap.String("mint", lease.PublicKey()), zap.Error(err))
	}

	lease.Keep()
	publishEvent(ctx, s.events, s.log, events.LaunchCreated, events.LaunchEvent{
		Mint:          lease.PublicKey(),
		CreatorWallet: in.publicKey,
		Symbol:        in.symbol,
	})

	return &model.CreateTxResponse{
		EncodedTx:           base64.StdEncoding.EncodeToString(signed),
		Encoding:            "base64",
		Mint:                lease.PublicKey(),
		IsVanityMint:        true,
		VanityMintPublicKey: lease.PublicKey(),
	}, nil
}

// UploadMetadata archives the image when an image store is configured and
// forwards the upload to IPFS.
func (s *LaunchService) UploadMetadata(ctx context.Context, upload model.TokenMetadataUpload) (*model.MetadataUploadResponse, error) {
	if len(upload.File) == 0 {
		return nil, &ValidationError{Detail: "Missing image file"}
	}

	var archived string
	if s.images != nil {
		key := "tokens/" + uuid.NewString() + imageExt(upload)
		url, err := s.images.Put(ctx, key, upload.ContentType, upload.File)
		if err != nil {
			s.log.Warn("image archive failed", zap.String("key", key), zap.Error(err))
		} else {
			archived = url
		}
	}

	res, err := s.uploader.UploadMetadata(ctx, upload)
	if err != nil {
		s.log.Warn("ipfs upload failed", zap.Error(err))
		return nil, &UserError{Kind: ErrUpstream, Message: "Pump IPFS upload failed", Cause: err}
	}

	out := &model.MetadataUploadResponse{MetadataURI: res.MetadataURI, ImageURL: res.ImageURL}
	if archived != "" {
		out.ImageURL = archived
	}
	return out, nil
}

func imageExt(upload model.TokenMetadataUpload) string {
	if ext := path.Ext(upload.FileName); ext != "" && len(ext) <= 5 {
		return strings.ToLower(ext)
	}
	if exts, _ := mime.ExtensionsByType(upload.ContentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
