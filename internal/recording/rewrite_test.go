package recording

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestRewriteKeepsTimestampsRecomputesLengths(t *testing.T) {
	in := buildRecording(t,
		Frame{ElapsedMicros: 100, Payload: []byte("aa")},
		Frame{ElapsedMicros: 250, Payload: []byte("aaaa")},
	)

	// transform that changes payload length
	grow := func(p []byte) ([]byte, error) {
		return []byte(strings.ReplaceAll(string(p), "a", "bbb")), nil
	}

	var out bytes.Buffer
	if err := Rewrite(bytes.NewReader(in), &out, grow); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	r, err := OpenReader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("open rewritten: %v", err)
	}
	f1, err := r.Next()
	if err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if f1.ElapsedMicros != 100 || string(f1.Payload) != "bbbbbb" {
		t.Fatalf("frame 1 = %d %q", f1.ElapsedMicros, f1.Payload)
	}
	f2, err := r.Next()
	if err != nil {
		t.Fatalf("frame 2: %v", err)
	}
	if f2.ElapsedMicros != 250 || len(f2.Payload) != 12 {
		t.Fatalf("frame 2 = %d %q", f2.ElapsedMicros, f2.Payload)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestRewriteIdentityRoundtrip(t *testing.T) {
	in := buildRecording(t,
		Frame{ElapsedMicros: 1, Payload: []byte("x")},
		Frame{ElapsedMicros: 2, Payload: []byte("yz")},
	)
	identity := func(p []byte) ([]byte, error) { return p, nil }

	var out bytes.Buffer
	if err := Rewrite(bytes.NewReader(in), &out, identity); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !bytes.Equal(in, out.Bytes()) {
		t.Fatalf("identity rewrite changed bytes")
	}
}

func TestRewriteBadHeaderWritesNothing(t *testing.T) {
	bogus := append(Header{MagicNumber: 1, FormatVersion: 2}.Encode(), EncodeFrame(1, []byte("p"))...)
	var out bytes.Buffer
	err := Rewrite(bytes.NewReader(bogus), &out, func(p []byte) ([]byte, error) { return p, nil })
	if !errors.Is(err, ErrInvalidMagicNumber) {
		t.Fatalf("expected ErrInvalidMagicNumber, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("output written despite header failure")
	}
}

func TestRewriteKeepsEarlierOutputOnFailure(t *testing.T) {
	in := buildRecording(t,
		Frame{ElapsedMicros: 1, Payload: []byte("good")},
		Frame{ElapsedMicros: 2, Payload: []byte("bad")},
	)
	boom := errors.New("boom")
	transform := func(p []byte) ([]byte, error) {
		if string(p) == "bad" {
			return nil, boom
		}
		return p, nil
	}

	var out bytes.Buffer
	if err := Rewrite(bytes.NewReader(in), &out, transform); !errors.Is(err, boom) {
		t.Fatalf("expected transform error, got %v", err)
	}
	// header and first frame survive
	r, err := OpenReader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("open partial output: %v", err)
	}
	if f, err := r.Next(); err != nil || string(f.Payload) != "good" {
		t.Fatalf("first frame: %v %q", err, f.Payload)
	}
}
