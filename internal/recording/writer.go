package recording

import (
	"bufio"
	"io"
)

// Writer appends frames to a recording sink. Each frame is handed to the
// sink as one whole write, so a flushed stream never ends with a length
// prefix that promises more payload bytes than follow it.
//
// Writer is not safe for concurrent use; every sink has exactly one owner.
type Writer struct {
	w          *bufio.Writer
	headerDone bool
}

// NewWriter wraps sink in a Writer.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(sink)}
}

// WriteHeader writes and flushes the file header. It must complete before
// the first frame; Append calls it implicitly if needed.
func (w *Writer) WriteHeader() error {
	if w.headerDone {
		return nil
	}
	if _, err := w.w.Write(NewHeader().Encode()); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	w.headerDone = true
	return nil
}

// Append writes one frame. The frame is encoded in full before any byte
// reaches the sink.
func (w *Writer) Append(elapsedMicros uint64, payload []byte) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	_, err := w.w.Write(EncodeFrame(elapsedMicros, payload))
	return err
}

// Flush pushes buffered frames to the sink.
func (w *Writer) Flush() error { return w.w.Flush() }
