package service

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/events"
	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/secret"
	"github.com/fluxur/backend/internal/solana"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Domain:          "fluxur",
		NonceTTL:        "5m",
		SessionTTL:      "168h",
		NonceLookback:   "5",
		RateLimitPerMin: "60",
		CookieName:      "fluxur_session",
		CookieSecure:    "false",
	}
}

func newTestAuth(t *testing.T, store AuthStore) *AuthService {
	t.Helper()
	svc, err := NewAuthService(store, events.Nop{}, zap.NewNop(), testAuthConfig())
	require.NoError(t, err)
	return svc
}

func newTestVanity(t *testing.T, store VanityStore) *VanityService {
	t.Helper()
	box, err := secret.New(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32))))
	require.NoError(t, err)
	svc, err := NewVanityService(store, box, events.Nop{}, zap.NewNop(), config.VanityConfig{
		ReservationTTL: "30m",
		SweepInterval:  "1m",
	})
	require.NoError(t, err)
	return svc
}

type wallet struct {
	key     ed25519.PrivateKey
	address string
}

func newWallet(t *testing.T) wallet {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return wallet{key: key, address: solana.PublicKeyOf(key)}
}

func (w wallet) sign(message string) string {
	return base58.Encode(ed25519.Sign(w.key, []byte(message)))
}

func (w wallet) secret() string {
	return solana.EncodeSecretKey(w.key)
}

// seedPool imports n freshly generated mints and returns their wallets.
func seedPool(t *testing.T, svc *VanityService, n int) []wallet {
	t.Helper()
	mints := make([]wallet, n)
	req := make([]model.VanityReservation, n)
	for i := range mints {
		mints[i] = newWallet(t)
		req[i] = model.VanityReservation{PublicID: mints[i].address, SecretMaterial: mints[i].secret()}
	}
	_, err := svc.Import(t.Context(), req)
	require.NoError(t, err)
	return mints
}

func testUser() *model.AuthUser {
	return &model.AuthUser{ID: 1, WalletAddress: "Abc123"}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

