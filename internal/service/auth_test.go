package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/db"
	"github.com/fluxur/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issuedAt = "2024-06-01T12:00:00.000Z"

func login(t *testing.T, svc *AuthService, w wallet) (string, *model.User, error) {
	t.Helper()
	challenge, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)
	msg := ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)
	return svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     w.sign(msg),
		IssuedAt:      issuedAt,
	})
}

func TestChallengeMessageFormat(t *testing.T) {
	assert.Equal(t, "Domain: fluxur\nWallet: W\nNonce: N\nIssuedAt: T", ChallengeMessage("fluxur", "W", "N", "T"))
}

func TestIssueChallenge(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	now := time.Now()
	svc.now = fixedClock(now)

	res, err := svc.IssueChallenge(context.Background(), "Abc123")
	require.NoError(t, err)
	assert.Len(t, res.Nonce, 44) // 32 bytes, base64
	assert.True(t, res.ExpiresAt.Equal(now.Add(5*time.Minute)))

	_, err = svc.IssueChallenge(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerifyChallengeSucceedsExactlyOnce(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)

	challenge, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)
	req := model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)),
		IssuedAt:      issuedAt,
	}

	token, user, err := svc.VerifyChallenge(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, token, w.address+".")
	assert.Equal(t, w.address, user.WalletAddress)

	_, _, err = svc.VerifyChallenge(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidNonce)
}

func TestVerifyChallengeTrimsWalletAndNonce(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)

	challenge, err := svc.IssueChallenge(context.Background(), "  "+w.address)
	require.NoError(t, err)

	token, user, err := svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: " " + w.address + " ",
		Nonce:         challenge.Nonce + "\n",
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)),
		IssuedAt:      issuedAt,
	})
	require.NoError(t, err)
	assert.Contains(t, token, w.address+".")
	assert.Equal(t, w.address, user.WalletAddress)
}

func TestVerifyChallengeRejectsExpiredNonce(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)
	now := time.Now()
	svc.now = fixedClock(now)

	challenge, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)

	svc.now = fixedClock(now.Add(5*time.Minute + time.Second))
	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)),
		IssuedAt:      issuedAt,
	})
	assert.ErrorIs(t, err, ErrInvalidNonce)
}

func TestVerifyChallengeRejectsForeignSignature(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)
	other := newWallet(t)

	challenge, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)
	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     other.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)),
		IssuedAt:      issuedAt,
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// the nonce survives a failed signature
	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)),
		IssuedAt:      issuedAt,
	})
	assert.NoError(t, err)
}

func TestVerifyChallengeRejectsTamperedFields(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)

	challenge, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)
	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)),
		IssuedAt:      "2030-01-01T00:00:00Z",
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         "not-issued",
		Signature:     w.sign("x"),
		IssuedAt:      issuedAt,
	})
	assert.ErrorIs(t, err, ErrInvalidNonce)
}

func TestVerifyChallengeMissingFields(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	_, _, err := svc.VerifyChallenge(context.Background(), model.VerifyRequest{WalletAddress: "w", Nonce: "n"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Missing fields", verr.Detail)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerifyChallengeOnlyLooksAtRecentNonces(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)

	first, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := svc.IssueChallenge(context.Background(), w.address)
		require.NoError(t, err)
	}

	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         first.Nonce,
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, first.Nonce, issuedAt)),
		IssuedAt:      issuedAt,
	})
	assert.ErrorIs(t, err, ErrInvalidNonce)
}

func TestConcurrentVerifySameNonce(t *testing.T) {
	store := db.NewMemory()
	svc := newTestAuth(t, store)
	w := newWallet(t)

	challenge, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)
	req := model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, issuedAt)),
		IssuedAt:      issuedAt,
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.VerifyChallenge(context.Background(), req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrInvalidNonce):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 15, rejected)
}

func TestRepeatedLoginReusesUser(t *testing.T) {
	store := db.NewMemory()
	svc := newTestAuth(t, store)
	w := newWallet(t)

	_, first, err := login(t, svc, w)
	require.NoError(t, err)
	_, second, err := login(t, svc, w)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.UserCount())
}

func TestResolveSession(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)
	now := time.Now()
	svc.now = fixedClock(now)

	token, user, err := login(t, svc, w)
	require.NoError(t, err)

	got, err := svc.ResolveSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &model.AuthUser{ID: user.ID, WalletAddress: w.address}, got)

	_, err = svc.ResolveSession(context.Background(), token+"x")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.ResolveSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	svc.now = fixedClock(now.Add(7*24*time.Hour + time.Second))
	_, err = svc.ResolveSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	w := newWallet(t)

	token, _, err := login(t, svc, w)
	require.NoError(t, err)
	user, err := svc.ResolveSession(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token, user))
	_, err = svc.ResolveSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.NoError(t, svc.Logout(context.Background(), "", nil))
}

func TestIssuedAtSkewCheck(t *testing.T) {
	cfg := testAuthConfig()
	cfg.IssuedAtMaxSkew = "10m"
	svc, err := NewAuthService(db.NewMemory(), nil, nil, cfg)
	require.NoError(t, err)
	svc.now = fixedClock(time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC))
	w := newWallet(t)

	// the memory store compares expiry with the wall clock, so only the
	// skew path is exercised here
	challenge, err := svc.IssueChallenge(context.Background(), w.address)
	require.NoError(t, err)
	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     w.sign(ChallengeMessage("fluxur", w.address, challenge.Nonce, "2024-06-01T11:00:00Z")),
		IssuedAt:      "2024-06-01T11:00:00Z",
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, _, err = svc.VerifyChallenge(context.Background(), model.VerifyRequest{
		WalletAddress: w.address,
		Nonce:         challenge.Nonce,
		Signature:     "x",
		IssuedAt:      "yesterday",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewAuthServiceRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AuthConfig)
	}{
		{"empty-domain", func(c *config.AuthConfig) { c.Domain = "" }},
		{"bad-nonce-ttl", func(c *config.AuthConfig) { c.NonceTTL = "soon" }},
		{"bad-session-ttl", func(c *config.AuthConfig) { c.SessionTTL = "-1h" }},
		{"short-lookback", func(c *config.AuthConfig) { c.NonceLookback = "2" }},
		{"bad-skew", func(c *config.AuthConfig) { c.IssuedAtMaxSkew = "x" }},
		{"bad-secure", func(c *config.AuthConfig) { c.CookieSecure = "maybe" }},
		{"bad-samesite", func(c *config.AuthConfig) { c.CookieSameSite = "loose" }},
		{"none-without-secure", func(c *config.AuthConfig) { c.CookieSameSite = "none"; c.CookieSecure = "false" }},
		{"empty-cookie-name", func(c *config.AuthConfig) { c.CookieName = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAuthConfig()
			tt.mutate(&cfg)
			_, err := NewAuthService(db.NewMemory(), nil, nil, cfg)
			assert.ErrorIs(t, err, ErrMisconfigured)
		})
	}
}

func TestCookieConfigDefaults(t *testing.T) {
	svc := newTestAuth(t, db.NewMemory())
	cfg := svc.CookieConfig()
	assert.Equal(t, "fluxur_session", cfg.Name)
	assert.Equal(t, "/", cfg.Path)
	assert.Equal(t, 7*24*60*60, cfg.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cfg.SameSite)
}
