// Package signature provides helper functions for handling the blockchain
// hashing needs.
package signature

import (
	"encoding/hex"
	"encoding/json"

	sha256 "github.com/minio/sha256-simd"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns a unique string for the value.
//
// The value is marshaled to JSON before hashing. Struct fields are always
// marshaled in declaration order and map keys are sorted by the encoder, so
// two values holding the same content produce the same hash regardless of
// how they were constructed.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	return Digest(data)
}

// Digest returns the lowercase hex encoded sha256 of the specified data.
func Digest(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
