package db

import (
	"context"
	"time"

	"github.com/fluxur/backend/internal/model"
)

// ReserveVanityMint flips one available mint to reserved and returns it.
// SKIP LOCKED lets concurrent callers each claim a different row; pgx.ErrNoRows
// means the pool is exhausted.
func (db *Postgres) ReserveVanityMint(ctx context.Context) (*model.VanityMint, error) {
	query := `
		UPDATE vanity_mints
		SET status = 'reserved', reserved_at = NOW()
		WHERE id = (
			SELECT id FROM vanity_mints
			WHERE status = 'available'
			ORDER BY id
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, public_key, secret_key, status, reserved_at, used_at, created_at
	`
	var m model.VanityMint
	err := db.Pool.QueryRow(ctx, query).Scan(
		&m.ID,
		&m.PublicKey,
		&m.SecretKey,
		&m.Status,
		&m.ReservedAt,
		&m.UsedAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ReleaseVanityMint returns a reserved mint to the pool. Unlike a plain
// status reset it leaves used and invalid rows alone, so a late release can
// neither recycle a launched mint nor bring back a quarantined one.
func (db *Postgres) ReleaseVanityMint(ctx context.Context, publicKey string) error {
	query := `
		UPDATE vanity_mints
		SET status = 'available', reserved_at = NULL
		WHERE public_key = $1 AND status NOT IN ('used', 'invalid')
	`
	_, err := db.Pool.Exec(ctx, query, publicKey)
	return err
}

// QuarantineVanityMint takes a reserved mint out of rotation for good.
func (db *Postgres) QuarantineVanityMint(ctx context.Context, publicKey string) error {
	query := `
		UPDATE vanity_mints
		SET status = 'invalid', reserved_at = NULL
		WHERE public_key = $1 AND status = 'reserved'
	`
	tag, err := db.Pool.Exec(ctx, query, publicKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotReserved
	}
	return nil
}

func (db *Postgres) MarkVanityMintUsed(ctx context.Context, publicKey string) error {
	query := `
		UPDATE vanity_mints
		SET status = 'used', used_at = NOW()
		WHERE public_key = $1 AND status = 'reserved'
	`
	tag, err := db.Pool.Exec(ctx, query, publicKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotReserved
	}
	return nil
}

// ReleaseStaleVanityMints frees reservations made before cutoff.
func (db *Postgres) ReleaseStaleVanityMints(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE vanity_mints
		SET status = 'available', reserved_at = NULL
		WHERE status = 'reserved' AND reserved_at < $1
	`
	tag, err := db.Pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InsertVanityMint adds a new available mint. It reports false when the
// public key is already in the pool.
func (db *Postgres) InsertVanityMint(ctx context.Context, publicKey, sealedSecret string) (bool, error) {
	query := `
		INSERT INTO vanity_mints (public_key, secret_key, status, created_at)
		VALUES ($1, $2, 'available', NOW())
		ON CONFLICT (public_key) DO NOTHING
	`
	tag, err := db.Pool.Exec(ctx, query, publicKey, sealedSecret)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (db *Postgres) VanityMintStats(ctx context.Context) (model.VanityMintStats, error) {
	var stats model.VanityMintStats
	rows, err := db.Pool.Query(ctx, `SELECT status, COUNT(*) FROM vanity_mints GROUP BY status`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status model.VanityStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		stats.Add(status, count)
	}
	return stats, rows.Err()
}
