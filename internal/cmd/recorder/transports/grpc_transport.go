package transports

import (
	"context"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/IRL2/nanover-utils/internal/capture"
)

// Fully-qualified methods of the remote session's two subscription streams.
const (
	stateUpdatesMethod = "/nanover.protocol.state.State/SubscribeStateUpdates"
	latestFramesMethod = "/nanover.protocol.trajectory.TrajectoryService/SubscribeLatestFrames"
)

var (
	stateUpdatesDesc = &grpc.StreamDesc{StreamName: "SubscribeStateUpdates", ServerStreams: true}
	latestFramesDesc = &grpc.StreamDesc{StreamName: "SubscribeLatestFrames", ServerStreams: true}
)

// GrpcSession implements capture.Session over a gRPC channel.
type GrpcSession struct {
	conn *grpc.ClientConn
}

// Dial connects to target and waits for the channel to become ready, or
// for ctx to expire.
func Dial(ctx context.Context, target string) (*GrpcSession, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	conn.Connect()
	for {
		s := conn.GetState()
		if s == connectivity.Ready {
			return &GrpcSession{conn: conn}, nil
		}
		if !conn.WaitForStateChange(ctx, s) {
			_ = conn.Close()
			return nil, ctx.Err()
		}
	}
}

// StateUpdates subscribes to the shared-state update stream.
func (s *GrpcSession) StateUpdates(ctx context.Context) (capture.Source, error) {
	return s.open(ctx, stateUpdatesDesc, stateUpdatesMethod)
}

// SimulationFrames subscribes to the latest-frames trajectory stream.
func (s *GrpcSession) SimulationFrames(ctx context.Context) (capture.Source, error) {
	return s.open(ctx, latestFramesDesc, latestFramesMethod)
}

// Close tears down the channel, which also unblocks any pending Recv.
func (s *GrpcSession) Close() error { return s.conn.Close() }

func (s *GrpcSession) open(ctx context.Context, desc *grpc.StreamDesc, method string) (capture.Source, error) {
	stream, err := s.conn.NewStream(ctx, desc, method, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		return nil, err
	}
	// an all-default subscription request
	if err := stream.SendMsg([]byte{}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &grpcSource{stream: stream}, nil
}

// grpcSource adapts a server stream to capture.Source, yielding each
// message in its serialized form.
type grpcSource struct {
	stream grpc.ClientStream
}

func (s *grpcSource) Recv() ([]byte, error) {
	var msg []byte
	if err := s.stream.RecvMsg(&msg); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return msg, nil
}
