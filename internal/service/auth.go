package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/db"
	"github.com/fluxur/backend/internal/events"
	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/solana"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const nonceBytes = 32

type AuthStore interface {
	InsertNonce(ctx context.Context, walletAddress, nonce string, expiresAt time.Time) (*model.AuthNonce, error)
	ListRecentNonces(ctx context.Context, walletAddress string, limit int) ([]model.AuthNonce, error)
	CompleteLogin(ctx context.Context, nonceID int64, walletAddress, tokenHash string, expiresAt time.Time) (*model.User, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	RevokeSessionByTokenHash(ctx context.Context, tokenHash string) error
}

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

type AuthService struct {
	repo         AuthStore
	events       events.Publisher
	log          *zap.Logger
	domain       string
	nonceTTL     time.Duration
	sessionTTL   time.Duration
	lookback     int
	issuedAtSkew time.Duration
	rateLimit    int
	cookieCfg    CookieConfig
	now          func() time.Time
}

func NewAuthService(repo AuthStore, pub events.Publisher, log *zap.Logger, cfg config.AuthConfig) (*AuthService, error) {
	domain := strings.TrimSpace(cfg.Domain)
	if domain == "" {
		return nil, fmt.Errorf("%w: AUTH_DOMAIN is required", ErrMisconfigured)
	}

	nonceTTL, err := time.ParseDuration(cfg.NonceTTL)
	if err != nil || nonceTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid AUTH_NONCE_TTL", ErrMisconfigured)
	}

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil || sessionTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid AUTH_SESSION_TTL", ErrMisconfigured)
	}

	lookback, err := strconv.Atoi(strings.TrimSpace(cfg.NonceLookback))
	if err != nil || lookback < 5 {
		return nil, fmt.Errorf("%w: AUTH_NONCE_LOOKBACK must be at least 5", ErrMisconfigured)
	}

	var skew time.Duration
	if strings.TrimSpace(cfg.IssuedAtMaxSkew) != "" {
		skew, err = time.ParseDuration(cfg.IssuedAtMaxSkew)
		if err != nil || skew < 0 {
			return nil, fmt.Errorf("%w: invalid AUTH_ISSUED_AT_MAX_SKEW", ErrMisconfigured)
		}
	}

	rateLimit, err := strconv.Atoi(strings.TrimSpace(cfg.RateLimitPerMin))
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("%w: invalid AUTH_RATE_LIMIT_PER_MINUTE", ErrMisconfigured)
	}

	cookieSecure, err := parseBool(cfg.CookieSecure, true)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}

	if cookieSameSite == http.SameSiteNoneMode && !cookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		return nil, fmt.Errorf("%w: AUTH_COOKIE_NAME is required", ErrMisconfigured)
	}

	cookiePath := cfg.CookiePath
	if strings.TrimSpace(cookiePath) == "" {
		cookiePath = "/"
	}

	return &AuthService{
		repo:         repo,
		events:       pub,
		log:          log,
		domain:       domain,
		nonceTTL:     nonceTTL,
		sessionTTL:   sessionTTL,
		lookback:     lookback,
		issuedAtSkew: skew,
		rateLimit:    rateLimit,
		cookieCfg: CookieConfig{
			Name:     cookieName,
			Path:     cookiePath,
			Domain:   cfg.CookieDomain,
			Secure:   cookieSecure,
			SameSite: cookieSameSite,
			MaxAge:   int(sessionTTL.Seconds()),
		},
		now: time.Now,
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

// RateLimitPerMinute is the per-client budget for the challenge endpoints; 0
// disables limiting.
func (s *AuthService) RateLimitPerMinute() int {
	return s.rateLimit
}

// ChallengeMessage is the exact text a wallet signs to log in.
func ChallengeMessage(domain, walletAddress, nonce, issuedAt string) string {
	return "Domain: " + domain + "\nWallet: " + walletAddress + "\nNonce: " + nonce + "\nIssuedAt: " + issuedAt
}

func (s *AuthService) Domain() string {
	return s.domain
}

// IssueChallenge stores a fresh nonce for walletAddress. Earlier nonces stay
// valid until they expire.
func (s *AuthService) IssueChallenge(ctx context.Context, walletAddress string) (*model.NonceResponse, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, &ValidationError{Detail: "walletAddress required"}
	}

	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(s.nonceTTL).UTC()
	if _, err := s.repo.InsertNonce(ctx, walletAddress, nonce, expiresAt); err != nil {
		return nil, fmt.Errorf("insert nonce: %w", err)
	}

	return &model.NonceResponse{Nonce: nonce, ExpiresAt: expiresAt}, nil
}

// VerifyChallenge checks the signed challenge and opens a session. It returns
// the plaintext session token; only its hash is stored.
func (s *AuthService) VerifyChallenge(ctx context.Context, req model.VerifyRequest) (string, *model.User, error) {
	req.WalletAddress = strings.TrimSpace(req.WalletAddress)
	req.Nonce = strings.TrimSpace(req.Nonce)
	if req.WalletAddress == "" || req.Nonce == "" || req.Signature == "" || req.IssuedAt == "" {
		return "", nil, &ValidationError{Detail: "Missing fields"}
	}

	now := s.now()
	nonces, err := s.repo.ListRecentNonces(ctx, req.WalletAddress, s.lookback)
	if err != nil {
		return "", nil, fmt.Errorf("list nonces: %w", err)
	}
	var candidate *model.AuthNonce
	for i := range nonces {
		if nonces[i].Nonce == req.Nonce && nonces[i].UsableAt(now) {
			candidate = &nonces[i]
			break
		}
	}
	if candidate == nil {
		return "", nil, ErrInvalidNonce
	}

	if s.issuedAtSkew > 0 {
		if err := checkIssuedAt(req.IssuedAt, now, s.issuedAtSkew); err != nil {
			return "", nil, err
		}
	}

	message := ChallengeMessage(s.domain, req.WalletAddress, req.Nonce, req.IssuedAt)
	if err := solana.VerifyMessage(req.WalletAddress, []byte(message), req.Signature); err != nil {
		return "", nil, ErrInvalidSignature
	}

	token := newSessionToken(req.WalletAddress)
	user, err := s.repo.CompleteLogin(ctx, candidate.ID, req.WalletAddress, hashSessionToken(token), now.Add(s.sessionTTL).UTC())
	if err != nil {
		if errors.Is(err, db.ErrNonceConsumed) {
			return "", nil, ErrInvalidNonce
		}
		return "", nil, fmt.Errorf("complete login: %w", err)
	}

	s.publish(ctx, events.AuthLogin, events.LoginEvent{UserID: user.ID, WalletAddress: user.WalletAddress})
	return token, user, nil
}

// ResolveSession maps a presented token to its user. Missing, expired and
// revoked sessions all yield ErrUnauthorized.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*model.AuthUser, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthorized
	}

	session, err := s.repo.GetSessionByTokenHash(ctx, hashSessionToken(token))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if session.RevokedAt != nil || session.ExpiresAt == nil || !session.ExpiresAt.After(s.now()) {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return &model.AuthUser{ID: user.ID, WalletAddress: user.WalletAddress}, nil
}

// Logout revokes the session behind token. user is the identity the request
// resolved to, if any, and is only used for the event.
func (s *AuthService) Logout(ctx context.Context, token string, user *model.AuthUser) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := s.repo.RevokeSessionByTokenHash(ctx, hashSessionToken(token)); err != nil {
		return err
	}
	if user != nil {
		s.publish(ctx, events.AuthLogout, events.LoginEvent{UserID: user.ID, WalletAddress: user.WalletAddress})
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, event string, payload any) {
	publishEvent(ctx, s.events, s.log, event, payload)
}

func checkIssuedAt(value string, now time.Time, skew time.Duration) error {
	issued, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return &ValidationError{Detail: "issuedAt must be an ISO-8601 timestamp"}
	}
	if d := now.Sub(issued); d > skew || d < -skew {
		return ErrInvalidSignature
	}
	return nil
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

func parseSameSite(value string) (http.SameSite, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrInvalidInput
	}
}

func newNonce() (string, error) {
	raw := make([]byte, nonceBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func newSessionToken(walletAddress string) string {
	return walletAddress + "." + uuid.NewString()
}

func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
