package recording

import (
	"errors"
	"fmt"
)

// ErrInvalidMagicNumber reports a file that does not start with the
// recording magic number. The file is treated as wholly unusable.
var ErrInvalidMagicNumber = errors.New("recording: invalid magic number")

// ErrTruncatedFrame reports EOF in the middle of a frame. Frames already
// produced remain valid; no partial frame is ever returned.
var ErrTruncatedFrame = errors.New("recording: truncated frame")

// ErrFrameCorrupt reports a frame whose fields cannot be valid, such as an
// elapsed time beyond 64 bits or a payload length over MaxPayloadBytes.
var ErrFrameCorrupt = errors.New("recording: corrupt frame")

// UnsupportedFormatVersionError reports a header with a format version this
// implementation cannot read.
type UnsupportedFormatVersionError struct {
	Got       uint64
	Supported []uint64
}

func (e *UnsupportedFormatVersionError) Error() string {
	return fmt.Sprintf("recording: unsupported format version %d (supported: %v)", e.Got, e.Supported)
}
