// Package datauri parses base64 image data URIs of the form
// "data:image/png;base64,iVBOR...".
package datauri

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrNotDataURI   = errors.New("datauri: not a data URI")
	ErrNotImage     = errors.New("datauri: not an image media type")
	ErrNotBase64    = errors.New("datauri: missing base64 marker")
	ErrInvalidData  = errors.New("datauri: invalid base64 payload")
	ErrEmptyPayload = errors.New("datauri: empty payload")
)

// Image is a decoded embedded image.
type Image struct {
	MediaType string // e.g. "image/png"
	Data      []byte
}

// Parse decodes an embedded image data URI. Any payload that is not a
// base64 image data URI is rejected.
func Parse(raw string) (*Image, error) {
	raw = strings.TrimSpace(raw)
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return nil, ErrNotDataURI
	}

	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, ErrNotDataURI
	}

	mediaType, encoding, _ := strings.Cut(meta, ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, ErrNotImage
	}
	if encoding != "base64" {
		return nil, ErrNotBase64
	}
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidData
	}

	return &Image{MediaType: mediaType, Data: data}, nil
}

// Encode builds a data URI from raw image bytes.
func Encode(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Ext returns the file extension for a media type, defaulting to ".png".
func Ext(mediaType string) string {
	switch mediaType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
