package engine

import (
	"encoding/hex"
	"errors"
	"io"
)

// ImageKind is the detected boot image flavour
type ImageKind string

const (
	KindBoot       ImageKind = "boot"
	KindVendorBoot ImageKind = "vendor_boot"
)

const (
	MagicBoot       = "ANDROID!"
	MagicVendorBoot = "VNDRBOOT"
	magicSize       = 8
)

// Magic returns the magic string of the image kind
func (k ImageKind) Magic() string {
	if k == KindVendorBoot {
		return MagicVendorBoot
	}
	return MagicBoot
}

// OutputName is the file a build of this kind writes into the project
func (k ImageKind) OutputName() string {
	if k == KindVendorBoot {
		return "vendor_boot-new"
	}
	return "image-new"
}

var (
	errShortMagic = errors.New("Failed to read boot magic")
	errRewind     = errors.New("Failed to seek back to beginning of boot image")
)

type magicError struct {
	magic []byte
}

func (e *magicError) Error() string {
	return "Invalid boot magic: " + hex.EncodeToString(e.magic)
}

// DetectKind reads the magic at the start of r and rewinds it
func DetectKind(r io.ReadSeeker) (ImageKind, error) {
	buf := make([]byte, magicSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errShortMagic
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", errRewind
	}

	switch string(buf) {
	case MagicBoot:
		return KindBoot, nil
	case MagicVendorBoot:
		return KindVendorBoot, nil
	default:
		return "", &magicError{magic: buf}
	}
}
