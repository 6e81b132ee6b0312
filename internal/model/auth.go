package model

import "time"

type NonceRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type NonceResponse struct {
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type VerifyRequest struct {
	WalletAddress string `json:"walletAddress"`
	Nonce         string `json:"nonce"`
	Signature     string `json:"signature"`
	IssuedAt      string `json:"issuedAt"`
}

type VerifyResponse struct {
	OK bool `json:"ok"`
}

// AuthUser is the session-resolved identity handed to authenticated operations.
type AuthUser struct {
	ID            int64  `json:"id"`
	WalletAddress string `json:"walletAddress"`
}

type SessionResponse struct {
	User *AuthUser `json:"user"`
}

type User struct {
	ID            int64
	WalletAddress string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type AuthNonce struct {
	ID            int64
	WalletAddress string
	Nonce         string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	UsedAt        *time.Time
}

// UsableAt reports whether the nonce is unconsumed and unexpired at now.
func (n AuthNonce) UsableAt(now time.Time) bool {
	return n.UsedAt == nil && n.ExpiresAt.After(now)
}

type Session struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt *time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
