package recording

import (
	"fmt"
	"io"
)

// PayloadTransform maps one frame payload to its replacement. Returning an
// error aborts the rewrite at that frame.
type PayloadTransform func(payload []byte) ([]byte, error)

// Rewrite copies a recording from in to out, passing every frame payload
// through transform. The header is validated once and copied unchanged;
// each output frame keeps its original timestamp and carries the
// recomputed length of the transformed payload.
//
// There is no transactional guarantee: frames already written to out
// before a failure stay written.
func Rewrite(in io.Reader, out io.Writer, transform PayloadTransform) error {
	header, err := ReadHeader(in)
	if err != nil {
		return err
	}
	w := NewWriter(out)
	if _, err := w.w.Write(header.Encode()); err != nil {
		return err
	}
	w.headerDone = true

	for i := 0; ; i++ {
		f, err := ReadFrame(in)
		if err == io.EOF {
			return w.Flush()
		}
		if err != nil {
			// flush what was already rewritten, then report
			_ = w.Flush()
			return fmt.Errorf("rewrite: frame %d: %w", i, err)
		}
		payload, err := transform(f.Payload)
		if err != nil {
			_ = w.Flush()
			return fmt.Errorf("rewrite: frame %d: %w", i, err)
		}
		if err := w.Append(f.ElapsedMicros, payload); err != nil {
			return err
		}
	}
}
