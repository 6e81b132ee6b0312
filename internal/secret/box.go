// Package secret seals vanity mint secrets before they reach the store.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize      = 32
	nonceSize    = 24
	sealedPrefix = "sb1:"
)

var (
	ErrInvalidKey = errors.New("sealing key must be 32 bytes, base64 encoded")
	ErrOpen       = errors.New("unable to open sealed secret")
)

// Box seals values with NaCl secretbox. A Box built from an empty key passes
// values through unchanged, which is only meant for local development.
type Box struct {
	key *[keySize]byte
}

func New(encodedKey string) (*Box, error) {
	encodedKey = strings.TrimSpace(encodedKey)
	if encodedKey == "" {
		return &Box{}, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil || len(raw) != keySize {
		return nil, ErrInvalidKey
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &Box{key: &key}, nil
}

func (b *Box) Enabled() bool {
	return b.key != nil
}

func (b *Box) Seal(plaintext string) (string, error) {
	if b.key == nil {
		return plaintext, nil
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("secret nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, b.key)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(value string) (string, error) {
	sealed := strings.HasPrefix(value, sealedPrefix)
	if b.key == nil {
		if sealed {
			return "", ErrOpen
		}
		return value, nil
	}
	if !sealed {
		return "", ErrOpen
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrOpen
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	out, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, b.key)
	if !ok {
		return "", ErrOpen
	}
	return string(out), nil
}
