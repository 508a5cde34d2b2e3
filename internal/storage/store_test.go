package storage

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewImagePath(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	p := ReviewImagePath("user1", "review1", "PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^reviews/user1/review1/1700000000123_[0-9a-f]{13}\.png$`), p)

	p = ReviewImagePath("user1", "", "jpg", now)
	assert.Regexp(t, regexp.MustCompile(`^reviews/user1/1700000000123_[0-9a-f]{13}\.jpg$`), p)

	assert.NotEqual(t, ReviewImagePath("u", "", "jpg", now), ReviewImagePath("u", "", "jpg", now))
}

func TestPathFromURL(t *testing.T) {
	base := "http://localhost:8080/media"

	assert.Equal(t, "reviews/u/a.jpg", PathFromURL(base, "http://localhost:8080/media/reviews/u/a.jpg"))
	assert.Equal(t, "", PathFromURL(base, "https://images.unsplash.com/photo.jpg"))
	assert.Equal(t, "", PathFromURL(base, "http://localhost:8080/other/a.jpg"))
	assert.Equal(t, "", PathFromURL(base, "::"))
}

func TestFileStore(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root, "http://localhost:8080/media/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Put(ctx, "reviews/u/a.jpg", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/reviews/u/a.jpg", url)
	assert.Equal(t, "reviews/u/a.jpg", store.PathFromURL(url))

	data, err := os.ReadFile(filepath.Join(root, "reviews", "u", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	require.NoError(t, store.Delete(ctx, "reviews/u/a.jpg"))
	require.NoError(t, store.Delete(ctx, "reviews/u/a.jpg"))
	_, err = os.Stat(filepath.Join(root, "reviews", "u", "a.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRejectsEscapes(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost/media")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../secret", []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, store.Delete(context.Background(), ""), ErrInvalidPath)
}

func TestUploadReviewImage(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost/media")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(20, 20)))
	size := int64(buf.Len())

	up, err := UploadReviewImage(context.Background(), store, &buf, size, "image/png", "u1", "")
	require.NoError(t, err)
	assert.Regexp(t, `^reviews/u1/\d+_[0-9a-f]{13}\.png$`, up.Path)
	assert.Equal(t, store.URL(up.Path), up.URL)

	_, err = UploadReviewImage(context.Background(), store, &buf, size, "image/bmp", "u1", "")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
