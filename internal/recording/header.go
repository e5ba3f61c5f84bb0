package recording

import (
	"encoding/binary"
	"io"
)

// MagicNumber identifies a recording file.
const MagicNumber uint64 = 0x5c7347be80eaeeb2

// FormatVersion is the version written to new recordings.
const FormatVersion uint64 = 2

// HeaderSize is the encoded size of a Header in bytes.
const HeaderSize = 16

// supportedVersions lists the format versions this implementation reads.
var supportedVersions = []uint64{2}

// Header is the fixed prologue of a recording file.
type Header struct {
	MagicNumber   uint64
	FormatVersion uint64
}

// NewHeader returns the header written to new recordings.
func NewHeader() Header {
	return Header{MagicNumber: MagicNumber, FormatVersion: FormatVersion}
}

// Encode returns the 16-byte little-endian encoding of the header.
func (h Header) Encode() []byte {
	out := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint64(out[0:8], h.MagicNumber)
	binary.LittleEndian.PutUint64(out[8:16], h.FormatVersion)
	return out
}

// DecodeHeader parses a 16-byte header. It fails with ErrInvalidMagicNumber
// or UnsupportedFormatVersionError; on success the header is usable as-is.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, io.ErrUnexpectedEOF
	}
	h := Header{
		MagicNumber:   binary.LittleEndian.Uint64(b[0:8]),
		FormatVersion: binary.LittleEndian.Uint64(b[8:16]),
	}
	if h.MagicNumber != MagicNumber {
		return Header{}, ErrInvalidMagicNumber
	}
	supported := false
	for _, v := range supportedVersions {
		if h.FormatVersion == v {
			supported = true
			break
		}
	}
	if !supported {
		return Header{}, &UnsupportedFormatVersionError{Got: h.FormatVersion, Supported: supportedVersions}
	}
	return h, nil
}

// ReadHeader consumes exactly HeaderSize bytes from r and validates them.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, err
	}
	return DecodeHeader(buf[:])
}
