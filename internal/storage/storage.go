package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Upload path prefixes by purpose
const (
	PrefixHero       = "hero"
	PrefixProfile    = "profile"
	PrefixThumbnails = "thumbnails"
)

// Store accepts a blob under a generated path and returns a public
// retrievable URL. The rest of the system treats it as a black box.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// GeneratePath builds a collision-resistant object path under a purpose
// prefix, keeping the original file extension
func GeneratePath(prefix, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// entropy exhaustion is not recoverable here; fall back to time only
		return fmt.Sprintf("%s/%d.%s", prefix, time.Now().UnixMilli(), ext)
	}
	return fmt.Sprintf("%s/%d-%s.%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
