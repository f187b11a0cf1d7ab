// Package hashid derives stable, content-addressed document identities.
package hashid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// IDLength is the number of hex characters kept from the full digest.
const IDLength = 16

const chunkSize = 4096

// Compute streams r through SHA-256 in fixed-size chunks and returns the
// digest truncated to IDLength hex characters. Bit-identical inputs always
// produce the same identity. A read error propagates and no partial id is
// ever returned.
func Compute(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("hashing document content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil))[:IDLength], nil
}
