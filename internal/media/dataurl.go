// Package media turns uploaded images into image references (embedded data URLs).
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest accepted upload (5MB).
const MaxImageSize = 5 * 1024 * 1024

var (
	// ErrTooLarge is returned for uploads above MaxImageSize.
	ErrTooLarge = errors.New("image exceeds maximum size")
	// ErrUnsupportedType is returned when the content is not an allowed image type.
	ErrUnsupportedType = errors.New("unsupported image type")
)

// AllowedImageTypes maps accepted MIME types to their canonical extension.
var AllowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// Image is a validated upload.
type Image struct {
	ContentType string
	Ext         string
	Data        []byte
}

// DataURL returns the image as a "data:" URL usable directly as an image reference.
func (img Image) DataURL() string {
	return DataURL(img.ContentType, img.Data)
}

// DataURL encodes data as "data:<contentType>;base64,<payload>".
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ValidateImageType reports whether a declared content type or filename extension is allowed.
func ValidateImageType(contentType, filename string) bool {
	if _, ok := AllowedImageTypes[strings.ToLower(contentType)]; ok {
		return true
	}
	ext := strings.ToLower(path.Ext(filename))
	for _, e := range AllowedImageTypes {
		if e == ext || (ext == ".jpeg" && e == ".jpg") {
			return true
		}
	}
	return false
}

// Read consumes r, sniffs its type and returns the image. The declared
// content type is ignored in favour of the detected one.
func Read(r io.Reader) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return Image{}, ErrTooLarge
	}
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		base := strings.SplitN(m.String(), ";", 2)[0]
		if ext, ok := AllowedImageTypes[base]; ok {
			return Image{ContentType: base, Ext: ext, Data: data}, nil
		}
	}
	return Image{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}
