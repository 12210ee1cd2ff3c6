package security

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxImageSize is the largest accepted upload for profile images and logos.
const MaxImageSize = 5 << 20

var (
	ErrImageTooLarge    = errors.New("image exceeds the 5 MB limit")
	ErrImageEmpty       = errors.New("file is empty")
	ErrImageExtension   = errors.New("only .jpg, .jpeg, .png, .gif and .webp files are allowed")
	ErrImageSpoofed     = errors.New("file content does not match its extension")
	ErrImageContentType = errors.New("file type not allowed")
)

// Magic byte signatures keyed by lowercase extension
var imageMagicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}},
	".webp": {{0x52, 0x49, 0x46, 0x46}},
}

var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImage runs the extension whitelist, the magic byte check and the
// sniffed MIME whitelist in that order. It returns the sniffed MIME type.
func ValidateImage(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrImageEmpty
	}
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	signatures, ok := imageMagicBytes[ext]
	if !ok {
		return "", ErrImageExtension
	}

	matched := false
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			matched = true
			break
		}
	}
	if !matched {
		return "", ErrImageSpoofed
	}
	if ext == ".webp" && (len(data) < 12 || string(data[8:12]) != "WEBP") {
		return "", ErrImageSpoofed
	}

	mime := http.DetectContentType(data)
	if !imageMIMETypes[mime] {
		return mime, ErrImageContentType
	}
	return mime, nil
}
