package model

import "time"

type Commitment struct {
	Mint          string    `json:"mint"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	CreatedAt     time.Time `json:"createdAt"`
	EscrowAddress string    `json:"escrowAddress"`
	CustodyWallet string    `json:"custodyWallet"`
	PayoutWallet  string    `json:"creatorPayoutWallet"`
	CreatorWallet string    `json:"creatorWallet"`
	MetadataURI   string    `json:"metadataUri"`
	ImageURL      *string   `json:"imageUrl"`
	Website       *string   `json:"website"`
	Twitter       *string   `json:"twitter"`
	Telegram      *string   `json:"telegram"`
}
