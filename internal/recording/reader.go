package recording

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// Reader decodes frames from a validated recording stream. It is a lazy,
// single-pass iterator; restarting requires reopening the underlying
// stream.
type Reader struct {
	r      io.Reader
	header Header
}

// OpenReader validates the header of r and returns a Reader positioned at
// the first frame. Header errors make the whole stream unusable.
func OpenReader(r io.Reader) (*Reader, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, header: h}, nil
}

// Header returns the header read at open time.
func (r *Reader) Header() Header { return r.header }

// Next returns the next frame. It returns io.EOF at the end of the
// recording and ErrTruncatedFrame if the stream ends mid-frame; after any
// error the reader is exhausted.
func (r *Reader) Next() (Frame, error) {
	return ReadFrame(r.r)
}

// FileReader is a Reader over a file with single-release close semantics.
type FileReader struct {
	*Reader

	f    *os.File
	once sync.Once
}

// OpenFile opens path, validates its header and returns a buffered reader
// over its frames. The caller must Close it; Close is safe to call more
// than once and releases the file exactly once, whether or not iteration
// ran to completion.
func OpenFile(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := OpenReader(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &FileReader{Reader: r, f: f}, nil
}

// Close releases the underlying file.
func (fr *FileReader) Close() error {
	var err error
	fr.once.Do(func() { err = fr.f.Close() })
	return err
}
