package solana

import (
	"crypto/sha256"
	"errors"

	"filippo.io/edwards25519"
)

const (
	maxSeedLength = 32
	pdaMarker     = "ProgramDerivedAddress"
)

var ErrNoProgramAddress = errors.New("unable to find a viable program address")

// FindProgramAddress searches bumps from 255 down for the first seed hash that
// is not a valid curve point.
func FindProgramAddress(seeds [][]byte, programID []byte) ([]byte, uint8, error) {
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return nil, 0, ErrNoProgramAddress
		}
	}
	for bump := 255; bump >= 0; bump-- {
		h := sha256.New()
		for _, seed := range seeds {
			h.Write(seed)
		}
		h.Write([]byte{byte(bump)})
		h.Write(programID)
		h.Write([]byte(pdaMarker))
		candidate := h.Sum(nil)
		if !isOnCurve(candidate) {
			return candidate, uint8(bump), nil
		}
	}
	return nil, 0, ErrNoProgramAddress
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
