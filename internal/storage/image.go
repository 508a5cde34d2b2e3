package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	MaxImageSize = 10 << 20

	DefaultMaxWidth  = 1200
	DefaultMaxHeight = 800
	DefaultQuality   = 0.8
)

var (
	ErrNoFile          = errors.New("파일이 선택되지 않았습니다.")
	ErrFileTooLarge    = errors.New("파일 크기가 10MB를 초과합니다.")
	ErrUnsupportedType = errors.New("지원하지 않는 파일 형식입니다. (JPG, PNG, WebP, GIF만 가능)")
	ErrInvalidImage    = errors.New("이미지 로드 실패")
)

var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ValidateImage checks an upload's size and declared content type.
func ValidateImage(size int64, contentType string) error {
	if size <= 0 {
		return ErrNoFile
	}
	if size > MaxImageSize {
		return ErrFileTooLarge
	}
	if _, ok := allowedTypes[contentType]; !ok {
		return ErrUnsupportedType
	}

	return nil
}

// Image is an encoded image ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// FitDimensions scales width x height to fit the bounds keeping the aspect
// ratio. Landscape images are bounded by maxWidth, the rest by maxHeight.
// Images already inside the bounds keep their size.
func FitDimensions(width, height, maxWidth, maxHeight int) (int, int) {
	if width > height {
		if width > maxWidth {
			height = height * maxWidth / width
			width = maxWidth
		}
	} else if height > maxHeight {
		width = width * maxHeight / height
		height = maxHeight
	}

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	return width, height
}

// ResizeImage decodes r, shrinks it to fit the bounds and re-encodes it.
// quality is in 0.1..1.0 and applies to JPEG output. WebP input is written
// back as JPEG since there is no WebP encoder.
func ResizeImage(r io.Reader, contentType string, maxWidth, maxHeight int, quality float64) (Image, error) {
	var (
		src image.Image
		err error
	)
	switch contentType {
	case "image/jpeg", "image/jpg":
		src, err = jpeg.Decode(r)
	case "image/png":
		src, err = png.Decode(r)
	case "image/gif":
		src, err = gif.Decode(r)
	case "image/webp":
		src, err = webp.Decode(r)
	default:
		return Image{}, ErrUnsupportedType
	}
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := src.Bounds()
	width, height := FitDimensions(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	var dst image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		dst = scaled
	}

	var buf bytes.Buffer
	outType := contentType
	switch contentType {
	case "image/png":
		err = png.Encode(&buf, dst)
	case "image/gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		outType = "image/jpeg"
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality(quality)})
	}
	if err != nil {
		return Image{}, fmt.Errorf("encoding resized image: %w", err)
	}

	return Image{Data: buf.Bytes(), ContentType: outType, Width: width, Height: height}, nil
}

func jpegQuality(q float64) int {
	if q < 0.1 {
		q = 0.1
	}
	if q > 1 {
		q = 1
	}
	return int(q * 100)
}

// Extension returns the file extension stored objects of contentType use.
func Extension(contentType string) string {
	if contentType == "image/webp" {
		return "jpg"
	}
	return allowedTypes[contentType]
}
