package recording

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func buildRecording(t *testing.T, frames ...Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, f := range frames {
		if err := w.Append(f.ElapsedMicros, f.Payload); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := w.WriteHeader(); err != nil { // empty recordings still get a header
		t.Fatalf("header: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.Bytes()
}

func TestReaderIteratesInOrder(t *testing.T) {
	data := buildRecording(t,
		Frame{ElapsedMicros: 10, Payload: []byte("one")},
		Frame{ElapsedMicros: 20, Payload: []byte("two")},
		Frame{ElapsedMicros: 20, Payload: []byte("three")},
	)
	r, err := OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if r.Header().FormatVersion != FormatVersion {
		t.Fatalf("header version %d", r.Header().FormatVersion)
	}

	var got []Frame
	for {
		f, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		got = append(got, f)
	}
	if len(got) != 3 {
		t.Fatalf("read %d frames, want 3", len(got))
	}
	if got[0].ElapsedMicros != 10 || string(got[2].Payload) != "three" {
		t.Fatalf("frames out of order: %+v", got)
	}
}

func TestReaderTruncatedTail(t *testing.T) {
	data := buildRecording(t,
		Frame{ElapsedMicros: 1, Payload: []byte("kept")},
		Frame{ElapsedMicros: 2, Payload: []byte("lost")},
	)
	r, err := OpenReader(bytes.NewReader(data[:len(data)-1]))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// the first frame is still valid
	f, err := r.Next()
	if err != nil || string(f.Payload) != "kept" {
		t.Fatalf("first frame: %v %q", err, f.Payload)
	}
	if _, err := r.Next(); !errors.Is(err, ErrTruncatedFrame) {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
}

func TestOpenFileCloseOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.state")
	data := buildRecording(t, Frame{ElapsedMicros: 5, Payload: []byte("p")})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fr, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// abandon iteration early; both closes must be safe
	if err := fr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := fr.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestOpenFileBadHeaderReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.state")
	if err := os.WriteFile(path, []byte("not a recording at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFile(path); !errors.Is(err, ErrInvalidMagicNumber) {
		t.Fatalf("expected ErrInvalidMagicNumber, got %v", err)
	}
}
