package db

import (
	"context"
	"time"

	"github.com/fluxur/backend/internal/model"
)

const nonceColumns = `id, wallet_address, nonce, created_at, expires_at, used_at`

func (db *Postgres) InsertNonce(ctx context.Context, walletAddress, nonce string, expiresAt time.Time) (*model.AuthNonce, error) {
	query := `
		INSERT INTO auth_nonces (wallet_address, nonce, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING ` + nonceColumns
	var n model.AuthNonce
	err := db.Pool.QueryRow(ctx, query, walletAddress, nonce, expiresAt).Scan(
		&n.ID,
		&n.WalletAddress,
		&n.Nonce,
		&n.CreatedAt,
		&n.ExpiresAt,
		&n.UsedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListRecentNonces returns the newest nonces issued to walletAddress, newest first.
func (db *Postgres) ListRecentNonces(ctx context.Context, walletAddress string, limit int) ([]model.AuthNonce, error) {
	query := `
		SELECT ` + nonceColumns + `
		FROM auth_nonces
		WHERE wallet_address = $1
		ORDER BY id DESC
		LIMIT $2
	`
	rows, err := db.Pool.Query(ctx, query, walletAddress, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nonces []model.AuthNonce
	for rows.Next() {
		var n model.AuthNonce
		if err := rows.Scan(&n.ID, &n.WalletAddress, &n.Nonce, &n.CreatedAt, &n.ExpiresAt, &n.UsedAt); err != nil {
			return nil, err
		}
		nonces = append(nonces, n)
	}
	return nonces, rows.Err()
}

// CompleteLogin consumes the nonce, upserts the wallet's user and stores the
// session hash in one transaction. A nonce that was consumed or expired in
// the meantime aborts the whole login with ErrNonceConsumed.
func (db *Postgres) CompleteLogin(ctx context.Context, nonceID int64, walletAddress, tokenHash string, expiresAt time.Time) (*model.User, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE auth_nonces
		SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL AND expires_at > NOW()
	`, nonceID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		return nil, ErrNonceConsumed
	}

	var user model.User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (wallet_address, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (wallet_address) DO UPDATE SET updated_at = NOW()
		RETURNING id, wallet_address, created_at, updated_at
	`, walletAddress).Scan(&user.ID, &user.WalletAddress, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO user_sessions (user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`, user.ID, tokenHash, expiresAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetSessionByTokenHash returns the most recent session stored under tokenHash.
func (db *Postgres) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM user_sessions
		WHERE token_hash = $1
		ORDER BY id DESC
		LIMIT 1
	`
	var s model.Session
	err := db.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&s.ID,
		&s.UserID,
		&s.TokenHash,
		&s.ExpiresAt,
		&s.RevokedAt,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, wallet_address, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.WalletAddress,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) RevokeSessionByTokenHash(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE user_sessions
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := db.Pool.Exec(ctx, query, tokenHash)
	return err
}

