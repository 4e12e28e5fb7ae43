package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// profile and event images are normalized to a square thumbnail before upload
const (
	imageSize   = 300
	webpQuality = 80
)

// NormalizeImage decodes a jpeg/png/webp payload, center-crops it to a
// 300x300 square and re-encodes it as WebP. The content type is sniffed
// from the bytes, not trusted from the upload.
func NormalizeImage(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(contentType, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(data))
	case strings.Contains(contentType, "png"):
		img, err = png.Decode(bytes.NewReader(data))
	case strings.Contains(contentType, "webp"):
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported image type %s", contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Fill crops to cover the target box from the center, matching the
	// thumbnail shape the frontend expects
	img = imaging.Fill(img, imageSize, imageSize, imaging.Center, imaging.Lanczos)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}
