package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Kind identifies an allowed image format by its payload bytes.
type Kind string

const (
	KindJPEG Kind = "jpeg"
	KindPNG  Kind = "png"
	KindWebP Kind = "webp"
)

var (
	// ErrUnknownSignature is returned for payloads whose leading bytes
	// match no allowed format, whatever the declared content type says.
	ErrUnknownSignature = errors.New("file signature does not match an allowed image format")
	// ErrEmbeddedContent is returned when an otherwise valid image
	// carries an embedded executable or script marker.
	ErrEmbeddedContent = errors.New("embedded executable or script content detected")
	// ErrDimensionsTooLarge is returned when declared image dimensions
	// exceed the decompression-bomb limits.
	ErrDimensionsTooLarge = errors.New("image dimensions exceed limits")
)

// SignatureHeadLen is the number of leading bytes Classify needs.
// Callers can pass a longer slice; only this prefix is consulted.
const SignatureHeadLen = 12

var (
	jpegMagic  = []byte{0xFF, 0xD8, 0xFF}
	pngMagic   = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffMagic  = []byte{0x52, 0x49, 0x46, 0x46} // "RIFF"
	webpFourCC = []byte{0x57, 0x45, 0x42, 0x50} // "WEBP" at offset 8
)

// Classify matches the leading bytes of a payload against the allowed
// image signatures. The declared MIME type is deliberately not an input:
// classification is always payload-based. A RIFF prefix alone is not
// enough for WebP; the WEBP fourcc at offset 8 is required, otherwise
// AVI/WAV containers would pass.
func Classify(head []byte) (Kind, error) {
	switch {
	case bytes.HasPrefix(head, jpegMagic):
		return KindJPEG, nil
	case bytes.HasPrefix(head, pngMagic):
		return KindPNG, nil
	case bytes.HasPrefix(head, riffMagic) && len(head) >= 12 && bytes.Equal(head[8:12], webpFourCC):
		return KindWebP, nil
	default:
		return "", ErrUnknownSignature
	}
}

// Dimension limits applied to declared image sizes, guarding against
// decompression bombs.
const (
	MaxDimension = 10000
	MaxPixels    = 50_000_000
)

// CheckDimensions validates declared dimensions for formats whose header
// carries them. Only PNG is checked: its IHDR chunk sits at a fixed
// offset. Formats without a cheap declared size pass through.
func CheckDimensions(kind Kind, payload []byte) error {
	if kind != KindPNG || len(payload) < 24 {
		return nil
	}

	width := binary.BigEndian.Uint32(payload[16:20])
	height := binary.BigEndian.Uint32(payload[20:24])
	if width > MaxDimension || height > MaxDimension || uint64(width)*uint64(height) > MaxPixels {
		return ErrDimensionsTooLarge
	}
	return nil
}

// Byte patterns that have no business inside a clinic photo: executable
// container magics and script markers smuggled into metadata segments.
var threatPatterns = [][]byte{
	{0x4D, 0x5A},             // MZ (Windows PE)
	{0x7F, 0x45, 0x4C, 0x46}, // ELF
	{0xCA, 0xFE, 0xBA, 0xBE}, // Mach-O fat binary
	{0x50, 0x4B, 0x03, 0x04}, // ZIP local header (polyglot)
	[]byte("<script"),
	[]byte("<?php"),
}

// ScanEmbedded searches the payload for embedded executable signatures
// and script markers. The ZIP pattern also rejects polyglots that are a
// valid image and a valid archive at once.
func ScanEmbedded(payload []byte) error {
	for _, pat := range threatPatterns {
		if bytes.Contains(payload, pat) {
			return ErrEmbeddedContent
		}
	}
	return nil
}

// Validate runs the full pipeline on a payload: signature classification,
// dimension limits, then the embedded-content scan. It returns the
// detected kind on success.
func Validate(payload []byte) (Kind, error) {
	kind, err := Classify(payload)
	if err != nil {
		return "", err
	}
	if err := CheckDimensions(kind, payload); err != nil {
		return "", err
	}
	if err := ScanEmbedded(payload); err != nil {
		return "", err
	}
	return kind, nil
}
