// Package solana holds the small slice of Solana wire handling the backend
// needs: base58 keys, detached ed25519 message signatures, partial signing of
// serialized transactions and program-derived addresses.
package solana

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"strings"

	"github.com/mr-tron/base58"
)

var (
	ErrInvalidKey       = errors.New("invalid solana key")
	ErrInvalidSignature = errors.New("invalid signature")
)

// ParsePublicKey decodes a base58 address into a 32-byte ed25519 public key.
func ParsePublicKey(address string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(strings.TrimSpace(address))
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, ErrInvalidKey
	}
	return ed25519.PublicKey(raw), nil
}

// VerifyMessage checks a base58 detached signature over message made by the
// key behind address.
func VerifyMessage(address string, message []byte, signature string) error {
	pub, err := ParsePublicKey(address)
	if err != nil {
		return ErrInvalidSignature
	}
	sig, err := base58.Decode(strings.TrimSpace(signature))
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(pub, message, sig) {
		return ErrInvalidSignature
	}
	return nil
}

// KeypairFromBase58 decodes a 64-byte secret key (seed || public key), the
// format produced by solana-keygen and web3.js.
func KeypairFromBase58(secret string) (ed25519.PrivateKey, error) {
	raw, err := base58.Decode(strings.TrimSpace(secret))
	if err != nil || len(raw) != ed25519.PrivateKeySize {
		return nil, ErrInvalidKey
	}
	key := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(key[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return nil, ErrInvalidKey
	}
	return key, nil
}

func EncodePublicKey(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}

func EncodeSecretKey(key ed25519.PrivateKey) string {
	return base58.Encode(key)
}

func PublicKeyOf(key ed25519.PrivateKey) string {
	return base58.Encode(key.Public().(ed25519.PublicKey))
}
