package loader

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies script content by the first 8 bytes of its SHA256 hash
func Fingerprint(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:8])
}
