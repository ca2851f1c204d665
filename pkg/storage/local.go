package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local writes blobs to a directory served under URLPrefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

// NewLocal builds a Local driver.
func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

// Put stores the blob under a random key, keeping only known image extensions.
func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, fmt.Errorf("storage: create upload dir: %w", err)
	}

	key := uuid.NewString() + imageExt(in.Filename)
	f, err := os.OpenFile(filepath.Join(l.BaseDir, key), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, fmt.Errorf("storage: open %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, fmt.Errorf("storage: write %s: %w", key, err)
	}
	return PutResult{Key: key, URL: strings.TrimRight(l.URLPrefix, "/") + "/" + key}, nil
}

// Delete removes a stored blob. Keys cannot escape BaseDir.
func (l *Local) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(l.BaseDir, filepath.Base(key)))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }

func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}
