package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
)

// avatarWidth is the target width for stored avatars; height keeps ratio.
const avatarWidth = 256

// resizeAvatar decodes image bytes, scales them down to avatar size and
// re-encodes as JPEG.
func resizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid avatar image")
	}

	resized := imaging.Resize(img, avatarWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("failed to encode avatar image: %w", err)
	}
	return buf.Bytes(), nil
}

// extensionFor maps a content type to a file extension.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
