package solana

import (
	"bytes"
	"crypto/ed25519"
	"errors"
)

var (
	ErrMalformedTransaction = errors.New("malformed transaction")
	ErrSignerNotFound       = errors.New("signer not required by transaction")
)

const versionPrefixMask = 0x80

// SignTransaction adds key's signature to a serialized legacy or v0
// transaction and returns the re-serialized bytes. Other signature slots are
// left untouched so the wallet can co-sign later.
func SignTransaction(raw []byte, key ed25519.PrivateKey) ([]byte, error) {
	numSigs, n, err := decodeShortVec(raw)
	if err != nil {
		return nil, err
	}
	sigStart := n
	msgStart := sigStart + numSigs*ed25519.SignatureSize
	if numSigs == 0 || msgStart >= len(raw) {
		return nil, ErrMalformedTransaction
	}
	message := raw[msgStart:]

	headerAt := 0
	if message[0]&versionPrefixMask != 0 {
		if message[0]&^versionPrefixMask != 0 {
			return nil, ErrMalformedTransaction
		}
		headerAt = 1
	}
	if len(message) < headerAt+3 {
		return nil, ErrMalformedTransaction
	}
	requiredSigs := int(message[headerAt])

	keyCount, n, err := decodeShortVec(message[headerAt+3:])
	if err != nil {
		return nil, err
	}
	keysAt := headerAt + 3 + n
	if requiredSigs > keyCount || requiredSigs > numSigs || len(message) < keysAt+keyCount*ed25519.PublicKeySize {
		return nil, ErrMalformedTransaction
	}

	pub := key.Public().(ed25519.PublicKey)
	index := -1
	for i := 0; i < requiredSigs; i++ {
		off := keysAt + i*ed25519.PublicKeySize
		if bytes.Equal(message[off:off+ed25519.PublicKeySize], pub) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrSignerNotFound
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	sig := ed25519.Sign(key, message)
	copy(out[sigStart+index*ed25519.SignatureSize:], sig)
	return out, nil
}

// FeePayer returns the first static account key of a serialized message-bearing
// transaction.
func FeePayer(raw []byte) (string, error) {
	numSigs, n, err := decodeShortVec(raw)
	if err != nil {
		return "", err
	}
	msgStart := n + numSigs*ed25519.SignatureSize
	if msgStart >= len(raw) {
		return "", ErrMalformedTransaction
	}
	message := raw[msgStart:]
	headerAt := 0
	if message[0]&versionPrefixMask != 0 {
		headerAt = 1
	}
	if len(message) < headerAt+3 {
		return "", ErrMalformedTransaction
	}
	keyCount, n, err := decodeShortVec(message[headerAt+3:])
	if err != nil {
		return "", err
	}
	keysAt := headerAt + 3 + n
	if keyCount == 0 || len(message) < keysAt+ed25519.PublicKeySize {
		return "", ErrMalformedTransaction
	}
	return EncodePublicKey(message[keysAt : keysAt+ed25519.PublicKeySize]), nil
}

// decodeShortVec reads a compact-u16 length prefix.
func decodeShortVec(b []byte) (int, int, error) {
	value, size := 0, 0
	for {
		if size >= len(b) || size >= 3 {
			return 0, 0, ErrMalformedTransaction
		}
		elem := int(b[size])
		value |= (elem & 0x7f) << (size * 7)
		size++
		if elem&0x80 == 0 {
			break
		}
	}
	return value, size, nil
}

func encodeShortVec(value int) []byte {
	var out []byte
	for {
		elem := byte(value & 0x7f)
		value >>= 7
		if value == 0 {
			return append(out, elem)
		}
		out = append(out, elem|0x80)
	}
}
