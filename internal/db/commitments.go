package db

import (
	"context"

	"github.com/fluxur/backend/internal/model"
)

func (db *Postgres) UpsertCommitment(ctx context.Context, c model.Commitment) error {
	query := `
		INSERT INTO commitments (
			mint, name, symbol, creator_wallet, escrow_address, custody_wallet,
			payout_wallet, metadata_uri, image_url, website, twitter, telegram, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (mint) DO UPDATE SET
			name = EXCLUDED.name,
			symbol = EXCLUDED.symbol,
			creator_wallet = EXCLUDED.creator_wallet,
			escrow_address = EXCLUDED.escrow_address,
			custody_wallet = EXCLUDED.custody_wallet,
			payout_wallet = EXCLUDED.payout_wallet,
			metadata_uri = EXCLUDED.metadata_uri,
			image_url = EXCLUDED.image_url,
			website = EXCLUDED.website,
			twitter = EXCLUDED.twitter,
			telegram = EXCLUDED.telegram
	`
	_, err := db.Pool.Exec(ctx, query,
		c.Mint,
		c.Name,
		c.Symbol,
		c.CreatorWallet,
		c.EscrowAddress,
		c.CustodyWallet,
		c.PayoutWallet,
		c.MetadataURI,
		c.ImageURL,
		c.Website,
		c.Twitter,
		c.Telegram,
	)
	return err
}

func (db *Postgres) GetCommitment(ctx context.Context, mint string) (*model.Commitment, error) {
	query := `
		SELECT mint, name, symbol, creator_wallet, escrow_address, custody_wallet,
			payout_wallet, metadata_uri, image_url, website, twitter, telegram, created_at
		FROM commitments
		WHERE mint = $1
	`
	var c model.Commitment
	err := db.Pool.QueryRow(ctx, query, mint).Scan(
		&c.Mint,
		&c.Name,
		&c.Symbol,
		&c.CreatorWallet,
		&c.EscrowAddress,
		&c.CustodyWallet,
		&c.PayoutWallet,
		&c.MetadataURI,
		&c.ImageURL,
		&c.Website,
		&c.Twitter,
		&c.Telegram,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
