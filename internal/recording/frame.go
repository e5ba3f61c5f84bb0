package recording

import (
	"encoding/binary"
	"io"
)

// frameHeadSize is the fixed prefix of every frame: a 128-bit elapsed time
// and a 64-bit payload length.
const frameHeadSize = 24

// MaxPayloadBytes bounds a single frame payload. Lengths beyond it are
// treated as corruption rather than allocated.
const MaxPayloadBytes = 1 << 30

// Frame is one decoded record of a recording.
type Frame struct {
	// ElapsedMicros is the microsecond offset from the session start
	// instant. The on-disk field is 128 bits wide; offsets beyond 64 bits
	// cannot occur in practice and are rejected as corruption.
	ElapsedMicros uint64
	Payload       []byte
}

// EncodeFrame returns the full encoding of one frame: 24 bytes of prefix
// followed by the payload.
func EncodeFrame(elapsedMicros uint64, payload []byte) []byte {
	out := make([]byte, frameHeadSize+len(payload))
	binary.LittleEndian.PutUint64(out[0:8], elapsedMicros)
	// high quad of the u128 elapsed time stays zero
	binary.LittleEndian.PutUint64(out[16:24], uint64(len(payload)))
	copy(out[frameHeadSize:], payload)
	return out
}

// ReadFrame decodes exactly one frame from r. Decoding is atomic: it
// returns either a whole frame or an error, never a partial one.
//
// io.EOF is returned only at a clean frame boundary, with zero bytes
// consumed; it marks the normal end of a recording. EOF anywhere inside a
// frame yields ErrTruncatedFrame.
func ReadFrame(r io.Reader) (Frame, error) {
	var head [frameHeadSize]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil {
		if err == io.EOF && n == 0 {
			return Frame{}, io.EOF
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Frame{}, ErrTruncatedFrame
		}
		return Frame{}, err
	}

	elapsed := binary.LittleEndian.Uint64(head[0:8])
	if hi := binary.LittleEndian.Uint64(head[8:16]); hi != 0 {
		return Frame{}, ErrFrameCorrupt
	}
	length := binary.LittleEndian.Uint64(head[16:24])
	if length > MaxPayloadBytes {
		return Frame{}, ErrFrameCorrupt
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Frame{}, ErrTruncatedFrame
		}
		return Frame{}, err
	}
	return Frame{ElapsedMicros: elapsed, Payload: payload}, nil
}
