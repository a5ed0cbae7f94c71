package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
)

func testImagePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestLocalStore_SaveImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.SaveImage(context.Background(), []byte("raw-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The upload is stored verbatim under the static dir.
	data, err := os.ReadFile(filepath.Join(dir, "uploads", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, []byte("raw-bytes"), data)
}

func TestLocalStore_SaveAvatar_ResizesToJPEG(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.SaveAvatar(context.Background(), "user-1", testImagePNG(t, 1024, 512), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/static/avatars/user-1.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "user-1.jpg"))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, avatarWidth, img.Bounds().Dx())
	assert.Equal(t, avatarWidth/2, img.Bounds().Dy(), "aspect ratio is preserved")
}

func TestLocalStore_SaveAvatar_Overwrites(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	first, err := store.SaveAvatar(context.Background(), "user-1", testImagePNG(t, 300, 300), "image/png")
	require.NoError(t, err)
	second, err := store.SaveAvatar(context.Background(), "user-1", testImagePNG(t, 600, 600), "image/png")
	require.NoError(t, err)

	assert.Equal(t, first, second, "one avatar file per user")
}

func TestLocalStore_SaveAvatar_RejectsNonImage(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveAvatar(context.Background(), "user-1", []byte("not an image"), "image/png")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".gif", extensionFor("image/gif"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".jpg", extensionFor("application/octet-stream"))
}
