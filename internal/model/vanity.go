package model

import "time"

type VanityStatus string

const (
	VanityAvailable VanityStatus = "available"
	VanityReserved  VanityStatus = "reserved"
	VanityUsed      VanityStatus = "used"
	// VanityInvalid rows hold a secret that cannot be opened or does not
	// match the public key. They are never handed out again.
	VanityInvalid VanityStatus = "invalid"
)

// VanityMint is a pre-generated mint keypair. SecretKey holds the sealed
// secret as stored; services open it before handing it out.
type VanityMint struct {
	ID         int64
	PublicKey  string
	SecretKey  string
	Status     VanityStatus
	ReservedAt *time.Time
	UsedAt     *time.Time
	CreatedAt  time.Time
}

type VanityReservation struct {
	PublicID       string `json:"publicId"`
	SecretMaterial string `json:"secretMaterial"`
}

type VanityReleaseRequest struct {
	PublicID string `json:"publicId"`
}

type VanityImportRequest struct {
	Mints []VanityReservation `json:"mints"`
}

type VanityImportResponse struct {
	Imported int64 `json:"imported"`
	Skipped  int64 `json:"skipped"`
}

type VanityMintStats struct {
	Available int64 `json:"available"`
	Reserved  int64 `json:"reserved"`
	Used      int64 `json:"used"`
	Invalid   int64 `json:"invalid"`
}

func (s *VanityMintStats) Add(status VanityStatus, n int64) {
	switch status {
	case VanityAvailable:
		s.Available += n
	case VanityReserved:
		s.Reserved += n
	case VanityUsed:
		s.Used += n
	case VanityInvalid:
		s.Invalid += n
	}
}
