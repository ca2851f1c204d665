package media_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"tokoadmin/internal/config"
	"tokoadmin/internal/media"
	"tokoadmin/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngBytes, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func TestDataURLEncoder_SniffsContentType(t *testing.T) {
	ref, err := media.DataURLEncoder{}.Encode(context.Background(), bytes.NewReader(pngBytes), storage.PutInput{Filename: "dot"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes), ref)
}

func TestDataURLEncoder_KeepsDeclaredContentType(t *testing.T) {
	ref, err := media.DataURLEncoder{}.Encode(context.Background(), strings.NewReader("abc"),
		storage.PutInput{Filename: "a.jpg", ContentType: "image/jpeg; charset=binary"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,YWJj", ref)
}

func TestDataURLEncoder_RejectsOversizedUploads(t *testing.T) {
	_, err := media.DataURLEncoder{MaxBytes: 2}.Encode(context.Background(), strings.NewReader("abc"), storage.PutInput{Filename: "big.png"})
	assert.ErrorContains(t, err, "exceeds")
}

func TestBlobEncoder_ReturnsURL(t *testing.T) {
	enc := media.BlobEncoder{Storage: storage.NewLocal(t.TempDir(), "/uploads")}
	ref, err := enc.Encode(context.Background(), bytes.NewReader(pngBytes), storage.PutInput{Filename: "dot.png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))
}

func TestNew(t *testing.T) {
	enc, err := media.New(context.Background(), config.Config{MediaDriver: "dataurl"})
	require.NoError(t, err)
	assert.IsType(t, media.DataURLEncoder{}, enc)

	enc, err = media.New(context.Background(), config.Config{MediaDriver: "local", LocalUploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, media.BlobEncoder{}, enc)

	_, err = media.New(context.Background(), config.Config{MediaDriver: "s3"})
	assert.Error(t, err)

	_, err = media.New(context.Background(), config.Config{MediaDriver: "ftp"})
	assert.Error(t, err)
}
