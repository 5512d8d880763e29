package store

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 32

	// Magic identifies a valid hamdex dataset file.
	Magic = "HDX1"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	// Width64 and Width256 are the supported fingerprint widths in bits.
	Width64  uint16 = 64
	Width256 uint16 = 256
)

var (
	ErrBadMagic   = errors.New("store: invalid magic")
	ErrBadVersion = errors.New("store: unsupported format version")
	ErrBadWidth   = errors.New("store: unsupported fingerprint width")
	ErrTruncated  = errors.New("store: file shorter than header declares")
	ErrWrongWidth = errors.New("store: dataset width does not match requested view")
)

// Header holds the dataset metadata.
type Header struct {
	Magic     [4]byte
	Version   uint16
	WidthBits uint16
	Count     uint64
	Reserved  [16]byte // pad to HeaderSize
}

// EncodeHeader writes the header to a HeaderSize byte slice.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, errors.New("store: header is nil")
	}
	if h.WidthBits != Width64 && h.WidthBits != Width256 {
		return nil, ErrBadWidth
	}
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion
	var w bytes.Buffer
	if err := binary.Write(&w, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeHeader reads the header from src. Returns an error if the magic,
// version or width is invalid.
func DecodeHeader(src []byte) (*Header, error) {
	if len(src) < HeaderSize {
		return nil, ErrTruncated
	}
	var h Header
	r := bytes.NewReader(src[:HeaderSize])
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != Magic {
		return nil, ErrBadMagic
	}
	if h.Version != FormatVersion {
		return nil, ErrBadVersion
	}
	if h.WidthBits != Width64 && h.WidthBits != Width256 {
		return nil, ErrBadWidth
	}
	return &h, nil
}
