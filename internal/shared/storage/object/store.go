// Package object archives downloaded export files.
package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"time"

	"jobprep-web/internal/shared/util"
)

// Archive stores a copy of an exported report.
type Archive interface {
	Put(ctx context.Context, userID int, fileName, contentType string, data []byte) (storageKey string, err error)
}

// ArchiveKey builds "<user key>/<yyyy>/<mm>/<random>_<file name>".
func ArchiveKey(userID int, fileName string, now time.Time) (string, error) {
	clean, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(
		util.UserKey(userID),
		now.UTC().Format("2006"),
		now.UTC().Format("01"),
		fmt.Sprintf("%s_%s", randomID(), clean),
	), nil
}

func randomID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
