package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// UserKey returns a stable, path-safe namespace for a backend user ID.
func UserKey(userID int) string {
	sum := sha256.Sum256([]byte("user:" + strconv.Itoa(userID)))
	return hex.EncodeToString(sum[:8])
}
