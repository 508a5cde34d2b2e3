package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

type Uploaded struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// UploadReviewImage validates, resizes and stores one review image.
func UploadReviewImage(ctx context.Context, store Store, r io.Reader, size int64, contentType, userID, reviewID string) (Uploaded, error) {
	if err := ValidateImage(size, contentType); err != nil {
		return Uploaded{}, err
	}

	img, err := ResizeImage(io.LimitReader(r, MaxImageSize), contentType, DefaultMaxWidth, DefaultMaxHeight, DefaultQuality)
	if err != nil {
		return Uploaded{}, err
	}

	objectPath := ReviewImagePath(userID, reviewID, Extension(contentType), time.Now())
	url, err := store.Put(ctx, objectPath, img.Data)
	if err != nil {
		return Uploaded{}, fmt.Errorf("이미지 업로드 중 오류가 발생했습니다: %w", err)
	}

	return Uploaded{URL: url, Path: objectPath}, nil
}
