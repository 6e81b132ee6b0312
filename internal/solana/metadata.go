package solana

import (
	"encoding/binary"
	"errors"
	"strings"
)

// MetadataProgramID is the Metaplex token metadata program.
const MetadataProgramID = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"

const (
	metadataPrefixLen = 1 + 32 + 32 // key, update authority, mint
	maxNameLen        = 32
	maxSymbolLen      = 10
	maxURILen         = 200
)

var ErrShortMetadata = errors.New("metadata account too short")

type OnChainMetadata struct {
	Name   string
	Symbol string
	URI    string
}

// MetadataAddress derives the metadata PDA for mint.
func MetadataAddress(mint string) (string, error) {
	mintKey, err := ParsePublicKey(mint)
	if err != nil {
		return "", err
	}
	program, err := ParsePublicKey(MetadataProgramID)
	if err != nil {
		return "", err
	}
	addr, _, err := FindProgramAddress([][]byte{[]byte("metadata"), program, mintKey}, program)
	if err != nil {
		return "", err
	}
	return EncodePublicKey(addr), nil
}

// ParseMetadata reads name, symbol and uri from a metadata account.
func ParseMetadata(data []byte) (OnChainMetadata, error) {
	var md OnChainMetadata
	off := metadataPrefixLen
	fields := []struct {
		dst *string
		max int
	}{
		{&md.Name, maxNameLen},
		{&md.Symbol, maxSymbolLen},
		{&md.URI, maxURILen},
	}
	for _, f := range fields {
		if len(data) < off+4 {
			return md, ErrShortMetadata
		}
		n := int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		if n < 0 || len(data) < off+n {
			return md, ErrShortMetadata
		}
		value := data[off : off+min(n, f.max)]
		*f.dst = cleanMetadataString(value)
		off += n
	}
	return md, nil
}

func cleanMetadataString(b []byte) string {
	return strings.TrimSpace(strings.ReplaceAll(string(b), "\x00", ""))
}
