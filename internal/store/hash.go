package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
)

// ContentHash computes a content-addressable hash for a module memory
// image. The hash only covers the static identity span of page 00h upper
// (vendor block through media technology), excluding the lower page's
// volatile monitors, so re-reads of the same module with different live
// temperature/power readings land on the same profile.
func ContentHash(data []byte) (string, error) {
	if len(data) < cmis.BaseLen {
		return "", fmt.Errorf("data too short: need at least %d bytes, got %d", cmis.BaseLen, len(data))
	}

	// Page 00h upper, vendor name (0x81) through media technology (0xD4).
	hash := sha256.Sum256(data[0x81:0xD5])
	return "sha256:" + hex.EncodeToString(hash[:]), nil
}

// ShortHash returns a shortened version of the hash for display purposes.
func ShortHash(fullHash string) string {
	// Remove "sha256:" prefix and take first 12 chars
	if len(fullHash) > 19 {
		return fullHash[7:19]
	}
	return fullHash
}
