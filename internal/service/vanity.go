package service

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/db"
	"github.com/fluxur/backend/internal/events"
	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/solana"
	"go.uber.org/zap"
)

const (
	exhaustedMessage = "No FLXR addresses available right now. Please try again in a few minutes."

	// maxReserveAttempts bounds how many unusable rows one Reserve call
	// quarantines before giving up.
	maxReserveAttempts = 5
)

type VanityStore interface {
	ReserveVanityMint(ctx context.Context) (*model.VanityMint, error)
	ReleaseVanityMint(ctx context.Context, publicKey string) error
	QuarantineVanityMint(ctx context.Context, publicKey string) error
	MarkVanityMintUsed(ctx context.Context, publicKey string) error
	ReleaseStaleVanityMints(ctx context.Context, cutoff time.Time) (int64, error)
	InsertVanityMint(ctx context.Context, publicKey, sealedSecret string) (bool, error)
	VanityMintStats(ctx context.Context) (model.VanityMintStats, error)
}

// Sealer protects mint secrets at rest.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

type VanityService struct {
	repo           VanityStore
	box            Sealer
	events         events.Publisher
	log            *zap.Logger
	reservationTTL time.Duration
	sweepInterval  time.Duration
	now            func() time.Time
}

func NewVanityService(repo VanityStore, box Sealer, pub events.Publisher, log *zap.Logger, cfg config.VanityConfig) (*VanityService, error) {
	reservationTTL, err := time.ParseDuration(cfg.ReservationTTL)
	if err != nil || reservationTTL < 0 {
		return nil, fmt.Errorf("%w: invalid VANITY_RESERVATION_TTL", ErrMisconfigured)
	}
	sweepInterval, err := time.ParseDuration(cfg.SweepInterval)
	if err != nil || sweepInterval <= 0 {
		return nil, fmt.Errorf("%w: invalid VANITY_SWEEP_INTERVAL", ErrMisconfigured)
	}

	return &VanityService{
		repo:           repo,
		box:            box,
		events:         pub,
		log:            log,
		reservationTTL: reservationTTL,
		sweepInterval:  sweepInterval,
		now:            time.Now,
	}, nil
}

// Reserve hands one available mint to user. The caller must Release or
// Confirm it.
func (s *VanityService) Reserve(ctx context.Context, user *model.AuthUser) (*model.VanityReservation, error) {
	r, err := s.reserve(ctx, user)
	if err != nil {
		return nil, err
	}
	return &model.VanityReservation{PublicID: r.publicKey, SecretMaterial: r.secret}, nil
}

type reservedMint struct {
	publicKey string
	secret    string
	key       ed25519.PrivateKey
}

// reserve claims a mint whose secret opens to the matching keypair. Rows that
// fail that check are quarantined and the next one is tried.
func (s *VanityService) reserve(ctx context.Context, user *model.AuthUser) (*reservedMint, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	for range maxReserveAttempts {
		mint, err := s.repo.ReserveVanityMint(ctx)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, &UserError{Kind: ErrExhausted, Message: exhaustedMessage}
			}
			return nil, fmt.Errorf("reserve vanity mint: %w", err)
		}

		r, err := s.openMint(mint)
		if err != nil {
			s.quarantine(ctx, mint.PublicKey, err)
			continue
		}

		s.log.Info("vanity mint reserved", zap.String("mint", r.publicKey), zap.Int64("user_id", user.ID))
		s.publish(ctx, events.VanityReserved, events.VanityEvent{PublicKey: r.publicKey, WalletAddress: user.WalletAddress})
		return r, nil
	}
	return nil, fmt.Errorf("reserve vanity mint: %d unusable mints in a row", maxReserveAttempts)
}

func (s *VanityService) openMint(mint *model.VanityMint) (*reservedMint, error) {
	secret, err := s.box.Open(mint.SecretKey)
	if err != nil {
		return nil, err
	}
	key, err := solana.KeypairFromBase58(secret)
	if err != nil {
		return nil, err
	}
	if solana.PublicKeyOf(key) != mint.PublicKey {
		return nil, errors.New("secret does not match public key")
	}
	return &reservedMint{publicKey: mint.PublicKey, secret: secret, key: key}, nil
}

func (s *VanityService) quarantine(ctx context.Context, publicKey string, cause error) {
	s.log.Error("quarantining unusable vanity mint", zap.String("mint", publicKey), zap.Error(cause))
	if err := s.repo.QuarantineVanityMint(context.WithoutCancel(ctx), publicKey); err != nil {
		s.log.Error("vanity mint quarantine failed", zap.String("mint", publicKey), zap.Error(err))
	}
}

// Release puts publicID back into the pool. Releasing an available mint is a
// no-op.
func (s *VanityService) Release(ctx context.Context, user *model.AuthUser, publicID string) error {
	if user == nil {
		return ErrUnauthorized
	}
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return &ValidationError{Detail: "publicId required"}
	}
	if err := s.repo.ReleaseVanityMint(ctx, publicID); err != nil {
		return fmt.Errorf("release vanity mint: %w", err)
	}
	s.publish(ctx, events.VanityReleased, events.VanityEvent{PublicKey: publicID, WalletAddress: user.WalletAddress})
	return nil
}

// Confirm marks a reserved mint used after the launch landed on chain.
func (s *VanityService) Confirm(ctx context.Context, user *model.AuthUser, publicID string) error {
	if user == nil {
		return ErrUnauthorized
	}
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return &ValidationError{Detail: "publicId required"}
	}
	if err := s.markUsed(ctx, publicID, user.WalletAddress); err != nil {
		if errors.Is(err, db.ErrNotReserved) {
			return &UserError{Kind: ErrNotFound, Message: "Mint is not reserved"}
		}
		return err
	}
	return nil
}

func (s *VanityService) markUsed(ctx context.Context, publicID, wallet string) error {
	if err := s.repo.MarkVanityMintUsed(ctx, publicID); err != nil {
		return err
	}
	s.publish(ctx, events.VanityUsed, events.VanityEvent{PublicKey: publicID, WalletAddress: wallet})
	return nil
}

// 실패는 로그만 남긴다
func (s *VanityService) releaseQuietly(ctx context.Context, publicID string) {
	if err := s.repo.ReleaseVanityMint(context.WithoutCancel(ctx), publicID); err != nil {
		s.log.Error("vanity mint release failed", zap.String("mint", publicID), zap.Error(err))
		return
	}
	s.publish(ctx, events.VanityReleased, events.VanityEvent{PublicKey: publicID})
}

// Lease is a reserved mint whose release is already scheduled. Every exit
// path should defer Release; Keep or Commit cancel it.
type Lease struct {
	svc     *VanityService
	mint    string
	key     ed25519.PrivateKey
	wallet  string
	mu      sync.Mutex
	settled bool
}

// Acquire reserves a mint and returns it wrapped in a Lease.
//
//	lease, err := vanity.Acquire(ctx, user)
//	if err != nil { ... }
//	defer lease.Release(ctx)
//	... downstream work ...
//	lease.Keep()
func (s *VanityService) Acquire(ctx context.Context, user *model.AuthUser) (*Lease, error) {
	r, err := s.reserve(ctx, user)
	if err != nil {
		return nil, err
	}
	return &Lease{svc: s, mint: r.publicKey, key: r.key, wallet: user.WalletAddress}, nil
}

func (l *Lease) PublicKey() string { return l.mint }

// Key is the mint keypair, already checked against PublicKey.
func (l *Lease) Key() ed25519.PrivateKey { return l.key }

// Release returns the mint to the pool unless the lease was already settled.
// It survives cancellation of ctx.
func (l *Lease) Release(ctx context.Context) {
	if !l.settle() {
		return
	}
	l.svc.releaseQuietly(ctx, l.mint)
}

// Keep leaves the mint reserved for the client to confirm.
func (l *Lease) Keep() {
	l.settle()
}

// Commit settles the lease by marking the mint used.
func (l *Lease) Commit(ctx context.Context) error {
	if !l.settle() {
		return nil
	}
	return l.svc.markUsed(context.WithoutCancel(ctx), l.mint, l.wallet)
}

func (l *Lease) settle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.settled {
		return false
	}
	l.settled = true
	return true
}

// ReleaseStale frees reservations older than the reservation TTL. A zero TTL
// disables it.
func (s *VanityService) ReleaseStale(ctx context.Context) (int64, error) {
	if s.reservationTTL == 0 {
		return 0, nil
	}
	return s.repo.ReleaseStaleVanityMints(ctx, s.now().Add(-s.reservationTTL))
}

func (s *VanityService) RunSweeper(ctx context.Context) {
	if s.reservationTTL == 0 {
		return
	}
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.ReleaseStale(ctx)
			if err != nil {
				s.log.Error("stale reservation sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Info("released stale vanity reservations", zap.Int64("count", n))
			}
		}
	}
}

// Import validates, seals and stores new mints. Duplicates are skipped.
func (s *VanityService) Import(ctx context.Context, mints []model.VanityReservation) (*model.VanityImportResponse, error) {
	if len(mints) == 0 {
		return nil, &ValidationError{Detail: "mints required"}
	}
	for i, m := range mints {
		key, err := solana.KeypairFromBase58(m.SecretMaterial)
		if err != nil {
			return nil, &ValidationError{Detail: fmt.Sprintf("mints[%d]: invalid secret key", i)}
		}
		if solana.PublicKeyOf(key) != strings.TrimSpace(m.PublicID) {
			return nil, &ValidationError{Detail: fmt.Sprintf("mints[%d]: secret key does not match publicId", i)}
		}
	}

	out := &model.VanityImportResponse{}
	for _, m := range mints {
		sealed, err := s.box.Seal(strings.TrimSpace(m.SecretMaterial))
		if err != nil {
			return nil, fmt.Errorf("seal vanity secret: %w", err)
		}
		inserted, err := s.repo.InsertVanityMint(ctx, strings.TrimSpace(m.PublicID), sealed)
		if err != nil {
			return nil, fmt.Errorf("insert vanity mint: %w", err)
		}
		if inserted {
			out.Imported++
		} else {
			out.Skipped++
		}
	}
	s.log.Info("vanity mints imported", zap.Int64("imported", out.Imported), zap.Int64("skipped", out.Skipped))
	return out, nil
}

func (s *VanityService) Stats(ctx context.Context) (model.VanityMintStats, error) {
	return s.repo.VanityMintStats(ctx)
}

func (s *VanityService) publish(ctx context.Context, event string, payload any) {
	publishEvent(ctx, s.events, s.log, event, payload)
}
