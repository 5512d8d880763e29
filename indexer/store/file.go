package store

import (
	"encoding/binary"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/ic-timon/hamdex/hamming"
)

// File is a read-only, mmap-backed dataset.
type File struct {
	Header *Header
	f      *os.File
	data   mmap.MMap
}

// Open maps path read-only and validates its header against the file size.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "mmap dataset")
	}
	h, err := DecodeHeader(m)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	need := uint64(HeaderSize) + h.Count*uint64(h.WidthBits/8)
	if uint64(len(m)) < need {
		m.Unmap()
		f.Close()
		return nil, ErrTruncated
	}
	return &File{Header: h, f: f, data: m}, nil
}

// Hash64s returns a typed view of a 64-bit dataset. The slice is valid until
// Close and must not be modified.
func (d *File) Hash64s() ([]hamming.Hash64, error) {
	if d.Header.WidthBits != Width64 {
		return nil, ErrWrongWidth
	}
	if d.Header.Count == 0 {
		return nil, nil
	}
	ptr := unsafe.Pointer(&d.data[HeaderSize])
	return unsafe.Slice((*hamming.Hash64)(ptr), d.Header.Count), nil
}

// Hash256s returns a typed view of a 256-bit dataset. The slice is valid
// until Close and must not be modified.
func (d *File) Hash256s() ([]hamming.Hash256, error) {
	if d.Header.WidthBits != Width256 {
		return nil, ErrWrongWidth
	}
	if d.Header.Count == 0 {
		return nil, nil
	}
	ptr := unsafe.Pointer(&d.data[HeaderSize])
	return unsafe.Slice((*hamming.Hash256)(ptr), d.Header.Count), nil
}

// Close unmaps and closes the file.
func (d *File) Close() error {
	if d.data != nil {
		if err := d.data.Unmap(); err != nil {
			return err
		}
		d.data = nil
	}
	if d.f != nil {
		err := d.f.Close()
		d.f = nil
		return err
	}
	return nil
}

// Create writes a dataset atomically (write to path+".tmp", then rename).
// payload is the raw little-endian fingerprint data; its length must be a
// whole number of widthBits-sized records.
func Create(path string, widthBits uint16, payload []byte) error {
	recordBytes := int(widthBits / 8)
	if widthBits != Width64 && widthBits != Width256 {
		return ErrBadWidth
	}
	if len(payload)%recordBytes != 0 {
		return errors.Errorf("store: payload is not a whole number of %d-byte records", recordBytes)
	}
	hdr, err := EncodeHeader(&Header{
		WidthBits: widthBits,
		Count:     uint64(len(payload) / recordBytes),
	})
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "create dataset")
	}
	if _, err := f.Write(hdr); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "write header")
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "write payload")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	_ = os.Remove(path) // Windows rename requires the target to not exist
	return os.Rename(tmp, path)
}

// CreateHash64s writes hashes to path as a 64-bit dataset.
func CreateHash64s(path string, hashes []hamming.Hash64) error {
	payload := make([]byte, 8*len(hashes))
	for i, h := range hashes {
		binary.LittleEndian.PutUint64(payload[i*8:], uint64(h))
	}
	return Create(path, Width64, payload)
}

// CreateHash256s writes hashes to path as a 256-bit dataset.
func CreateHash256s(path string, hashes []hamming.Hash256) error {
	payload := make([]byte, 32*len(hashes))
	for i, h := range hashes {
		b := h.Bytes()
		copy(payload[i*32:], b[:])
	}
	return Create(path, Width256, payload)
}
