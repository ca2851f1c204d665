package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tokoadmin/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	local := storage.NewLocal(dir, "/uploads/")

	res, err := local.Put(context.Background(), strings.NewReader("png-bytes"), storage.PutInput{Filename: "Mug.PNG"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	raw, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(raw))

	require.NoError(t, local.Delete(context.Background(), "../../"+res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	assert.True(t, os.IsNotExist(err))
}

func TestLocal_DropsUnknownExtensions(t *testing.T) {
	local := storage.NewLocal(t.TempDir(), "/uploads")

	res, err := local.Put(context.Background(), strings.NewReader("x"), storage.PutInput{Filename: "evil.exe"})
	require.NoError(t, err)
	assert.NotContains(t, res.Key, ".")
}
