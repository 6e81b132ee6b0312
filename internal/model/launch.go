package model

import "github.com/shopspring/decimal"

type CreateTxRequest struct {
	PublicKey   string           `json:"publicKey"`
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	MetadataURI string           `json:"metadataUri"`
	Website     string           `json:"website"`
	Twitter     string           `json:"twitter"`
	Telegram    string           `json:"telegram"`
	Amount      *decimal.Decimal `json:"amount"`
	Slippage    *decimal.Decimal `json:"slippage"`
	PriorityFee *decimal.Decimal `json:"priorityFee"`
	Pool        string           `json:"pool"`
	ImageURL    string           `json:"imageUrl"`
}

type CreateTxResponse struct {
	EncodedTx           string `json:"encodedTx"`
	Encoding            string `json:"encoding"`
	Mint                string `json:"mint"`
	IsVanityMint        bool   `json:"isVanityMint"`
	VanityMintPublicKey string `json:"vanityMintPublicKey"`
}

type TokenMetadataUpload struct {
	FileName    string
	ContentType string
	File        []byte
	Name        string
	Symbol      string
	Description string
	Twitter     string
	Telegram    string
	Website     string
}

type MetadataUploadResponse struct {
	MetadataURI string `json:"metadataUri"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type VerifyCreatorRequest struct {
	Mint   string `json:"mint"`
	Wallet string `json:"wallet"`
}

type VerifyCreatorDebug struct {
	Mint           string  `json:"mint"`
	Cluster        string  `json:"cluster"`
	Wallet         string  `json:"wallet"`
	DerivedCreator *string `json:"derivedCreator"`
	OldestSig      *string `json:"oldestSig"`
}

type VerifyCreatorResponse struct {
	Verified           bool               `json:"verified"`
	Error              string             `json:"error,omitempty"`
	VerificationMethod string             `json:"verificationMethod,omitempty"`
	Name               string             `json:"name,omitempty"`
	Symbol             string             `json:"symbol,omitempty"`
	Image              string             `json:"image,omitempty"`
	Debug              VerifyCreatorDebug `json:"debug"`
}

type TokenMetadata struct {
	Name   string
	Symbol string
	Image  string
}
