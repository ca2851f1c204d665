// Package media turns uploaded image files into the image references stored
// on products.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"tokoadmin/internal/config"
	"tokoadmin/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes caps a single encoded upload.
const DefaultMaxBytes = 10 << 20

// Encoder converts an uploaded file into an image reference.
type Encoder interface {
	Encode(ctx context.Context, r io.Reader, in storage.PutInput) (string, error)
}

// DataURLEncoder keeps images inline as base64 data URLs. Nothing leaves
// the process.
type DataURLEncoder struct {
	MaxBytes int64
}

// Encode reads the whole upload and returns data:<mime>;base64,<payload>.
// The MIME type is sniffed from content when the client did not send a
// specific one.
func (e DataURLEncoder) Encode(ctx context.Context, r io.Reader, in storage.PutInput) (string, error) {
	limit := e.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("media: read %s: %w", in.Filename, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("media: %s exceeds %d bytes", in.Filename, limit)
	}

	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// BlobEncoder uploads images to a blob store and returns the public URL.
type BlobEncoder struct {
	Storage storage.Storage
}

// Encode stores the upload and returns its URL.
func (e BlobEncoder) Encode(ctx context.Context, r io.Reader, in storage.PutInput) (string, error) {
	res, err := e.Storage.Put(ctx, r, in)
	if err != nil {
		return "", fmt.Errorf("media: upload %s: %w", in.Filename, err)
	}
	return res.URL, nil
}

// New picks the encoder configured by MEDIA_DRIVER.
func New(ctx context.Context, cfg config.Config) (Encoder, error) {
	switch cfg.MediaDriver {
	case "", "dataurl":
		return DataURLEncoder{}, nil
	case "local":
		return BlobEncoder{Storage: storage.NewLocal(cfg.LocalUploadDir, cfg.LocalUploadURLPrefix)}, nil
	case "s3":
		s3, err := storage.NewS3(ctx, storage.S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return BlobEncoder{Storage: s3}, nil
	default:
		return nil, fmt.Errorf("unknown MEDIA_DRIVER: %s", cfg.MediaDriver)
	}
}
