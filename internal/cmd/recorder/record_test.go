package recorder

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"strconv"
	"testing"

	"google.golang.org/grpc"

	"github.com/IRL2/nanover-utils/internal/recording"
	"github.com/IRL2/nanover-utils/pkg/log"
)

// serverRawCodec mirrors the client's passthrough codec so the stub can
// send pre-serialized messages.
type serverRawCodec struct{}

func (serverRawCodec) Marshal(v interface{}) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("unsupported message type %T", v)
	}
	return b, nil
}

func (serverRawCodec) Unmarshal(data []byte, v interface{}) error {
	out, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("unsupported message type %T", v)
	}
	*out = append([]byte(nil), data...)
	return nil
}

func (serverRawCodec) Name() string { return "proto" }

func streamHandler(msgs [][]byte) func(interface{}, grpc.ServerStream) error {
	return func(_ interface{}, stream grpc.ServerStream) error {
		var req []byte
		if err := stream.RecvMsg(&req); err != nil {
			return err
		}
		for _, m := range msgs {
			if err := stream.SendMsg(m); err != nil {
				return err
			}
		}
		return nil
	}
}

// startStubServer serves both subscription streams, replaying the given
// messages and then ending each stream.
func startStubServer(t *testing.T, stateMsgs, trajMsgs [][]byte) (host string, port int) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := grpc.NewServer(grpc.ForceServerCodec(serverRawCodec{}))
	srv.RegisterService(&grpc.ServiceDesc{
		ServiceName: "nanover.protocol.state.State",
		HandlerType: (*interface{})(nil),
		Streams: []grpc.StreamDesc{{
			StreamName:    "SubscribeStateUpdates",
			Handler:       streamHandler(stateMsgs),
			ServerStreams: true,
		}},
	}, nil)
	srv.RegisterService(&grpc.ServiceDesc{
		ServiceName: "nanover.protocol.trajectory.TrajectoryService",
		HandlerType: (*interface{})(nil),
		Streams: []grpc.StreamDesc{{
			StreamName:    "SubscribeLatestFrames",
			Handler:       streamHandler(trajMsgs),
			ServerStreams: true,
		}},
	}, nil)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	addr := lis.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port
}

func readPayloads(t *testing.T, path string) [][]byte {
	t.Helper()
	fr, err := recording.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer fr.Close()
	var payloads [][]byte
	for {
		f, err := fr.Next()
		if err == io.EOF {
			return payloads
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		payloads = append(payloads, f.Payload)
	}
}

func TestRecordCommandWritesBothFiles(t *testing.T) {
	stateMsgs := [][]byte{{0x01}, {0x02, 0x02}, {0x03}}
	trajMsgs := [][]byte{{0x0a, 0x0b}, {0x0c}}
	host, port := startStubServer(t, stateMsgs, trajMsgs)

	stem := filepath.Join(t.TempDir(), "session")
	cmd := NewCommand(log.NewNop())
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--address", host, "--port", strconv.Itoa(port), stem})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got := readPayloads(t, stem+".state")
	if len(got) != len(stateMsgs) {
		t.Fatalf("state frames = %d, want %d", len(got), len(stateMsgs))
	}
	for i := range got {
		if !bytes.Equal(got[i], stateMsgs[i]) {
			t.Fatalf("state frame %d = %x, want %x", i, got[i], stateMsgs[i])
		}
	}

	got = readPayloads(t, stem+".traj")
	if len(got) != len(trajMsgs) {
		t.Fatalf("traj frames = %d, want %d", len(got), len(trajMsgs))
	}
	for i := range got {
		if !bytes.Equal(got[i], trajMsgs[i]) {
			t.Fatalf("traj frame %d = %x, want %x", i, got[i], trajMsgs[i])
		}
	}
}

func TestRecordCommandDialTimeout(t *testing.T) {
	stem := filepath.Join(t.TempDir(), "session")
	cmd := NewCommand(log.NewNop())
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	// nothing listens on this port; the short timeout should fail the dial
	cmd.SetArgs([]string{"--address", "127.0.0.1", "--port", "1", stem})
	t.Setenv("NREC_DIAL_TIMEOUT_MS", "200")
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected dial failure")
	}
}
