package db

import (
	"context"
	"sync"
	"time"

	"github.com/fluxur/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// Memory is an in-process store with the same contract as Postgres. A single
// mutex serialises every operation, which gives Reserve and CompleteLogin the
// same atomicity the SQL statements provide. Not-found lookups return
// pgx.ErrNoRows so IsNoRows works for both stores.
type Memory struct {
	mu          sync.Mutex
	now         func() time.Time
	nonces      []model.AuthNonce
	users       map[string]*model.User
	usersByID   map[int64]*model.User
	sessions    []model.Session
	mints       []*model.VanityMint
	commitments map[string]model.Commitment
	nextID      int64
}

func NewMemory() *Memory {
	return &Memory{
		now:         time.Now,
		users:       make(map[string]*model.User),
		usersByID:   make(map[int64]*model.User),
		commitments: make(map[string]model.Commitment),
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) InsertNonce(_ context.Context, walletAddress, nonce string, expiresAt time.Time) (*model.AuthNonce, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := model.AuthNonce{
		ID:            m.id(),
		WalletAddress: walletAddress,
		Nonce:         nonce,
		CreatedAt:     m.now(),
		ExpiresAt:     expiresAt,
	}
	m.nonces = append(m.nonces, n)
	return &n, nil
}

func (m *Memory) ListRecentNonces(_ context.Context, walletAddress string, limit int) ([]model.AuthNonce, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.AuthNonce
	for i := len(m.nonces) - 1; i >= 0 && len(out) < limit; i-- {
		if m.nonces[i].WalletAddress == walletAddress {
			out = append(out, m.nonces[i])
		}
	}
	return out, nil
}

func (m *Memory) CompleteLogin(_ context.Context, nonceID int64, walletAddress, tokenHash string, expiresAt time.Time) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	idx := -1
	for i := range m.nonces {
		if m.nonces[i].ID == nonceID {
			idx = i
			break
		}
	}
	if idx < 0 || !m.nonces[idx].UsableAt(now) {
		return nil, ErrNonceConsumed
	}
	m.nonces[idx].UsedAt = &now

	user, ok := m.users[walletAddress]
	if !ok {
		user = &model.User{ID: m.id(), WalletAddress: walletAddress, CreatedAt: now}
		m.users[walletAddress] = user
		m.usersByID[user.ID] = user
	}
	user.UpdatedAt = now

	exp := expiresAt
	m.sessions = append(m.sessions, model.Session{
		ID:        m.id(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: &exp,
		CreatedAt: now,
	})

	out := *user
	return &out, nil
}

func (m *Memory) GetSessionByTokenHash(_ context.Context, tokenHash string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.sessions) - 1; i >= 0; i-- {
		if m.sessions[i].TokenHash == tokenHash {
			s := m.sessions[i]
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Memory) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.usersByID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *user
	return &out, nil
}

func (m *Memory) RevokeSessionByTokenHash(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for i := range m.sessions {
		if m.sessions[i].TokenHash == tokenHash && m.sessions[i].RevokedAt == nil {
			m.sessions[i].RevokedAt = &now
		}
	}
	return nil
}

func (m *Memory) ReserveVanityMint(_ context.Context) (*model.VanityMint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mint := range m.mints {
		if mint.Status == model.VanityAvailable {
			now := m.now()
			mint.Status = model.VanityReserved
			mint.ReservedAt = &now
			out := *mint
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Memory) ReleaseVanityMint(_ context.Context, publicKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mint := m.findMint(publicKey)
	if mint == nil || mint.Status == model.VanityUsed || mint.Status == model.VanityInvalid {
		return nil
	}
	mint.Status = model.VanityAvailable
	mint.ReservedAt = nil
	return nil
}

func (m *Memory) QuarantineVanityMint(_ context.Context, publicKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mint := m.findMint(publicKey)
	if mint == nil || mint.Status != model.VanityReserved {
		return ErrNotReserved
	}
	mint.Status = model.VanityInvalid
	mint.ReservedAt = nil
	return nil
}

func (m *Memory) MarkVanityMintUsed(_ context.Context, publicKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mint := m.findMint(publicKey)
	if mint == nil || mint.Status != model.VanityReserved {
		return ErrNotReserved
	}
	now := m.now()
	mint.Status = model.VanityUsed
	mint.UsedAt = &now
	return nil
}

func (m *Memory) ReleaseStaleVanityMints(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var released int64
	for _, mint := range m.mints {
		if mint.Status == model.VanityReserved && mint.ReservedAt != nil && mint.ReservedAt.Before(cutoff) {
			mint.Status = model.VanityAvailable
			mint.ReservedAt = nil
			released++
		}
	}
	return released, nil
}

func (m *Memory) InsertVanityMint(_ context.Context, publicKey, sealedSecret string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findMint(publicKey) != nil {
		return false, nil
	}
	m.mints = append(m.mints, &model.VanityMint{
		ID:        m.id(),
		PublicKey: publicKey,
		SecretKey: sealedSecret,
		Status:    model.VanityAvailable,
		CreatedAt: m.now(),
	})
	return true, nil
}

func (m *Memory) VanityMintStats(_ context.Context) (model.VanityMintStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stats model.VanityMintStats
	for _, mint := range m.mints {
		stats.Add(mint.Status, 1)
	}
	return stats, nil
}

// VanityMint returns a copy of the named mint, mainly for tests and admin views.
func (m *Memory) VanityMint(publicKey string) (model.VanityMint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mint := m.findMint(publicKey)
	if mint == nil {
		return model.VanityMint{}, false
	}
	return *mint, true
}

func (m *Memory) findMint(publicKey string) *model.VanityMint {
	for _, mint := range m.mints {
		if mint.PublicKey == publicKey {
			return mint
		}
	}
	return nil
}

func (m *Memory) UpsertCommitment(_ context.Context, c model.Commitment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.commitments[c.Mint]; ok {
		c.CreatedAt = prev.CreatedAt
	} else {
		c.CreatedAt = m.now()
	}
	m.commitments[c.Mint] = c
	return nil
}

func (m *Memory) GetCommitment(_ context.Context, mint string) (*model.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.commitments[mint]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

// UserCount reports how many distinct users exist.
func (m *Memory) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

