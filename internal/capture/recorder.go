package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/IRL2/nanover-utils/internal/recording"
	"github.com/IRL2/nanover-utils/pkg/log"
)

// Source is one asynchronous stream of serialized messages. Recv blocks
// until the next message, returns io.EOF when the source completes, and
// unblocks with an error when the context it was opened under is
// cancelled.
type Source interface {
	Recv() ([]byte, error)
}

// Session is a live remote session exposing the two subscribable streams.
type Session interface {
	StateUpdates(ctx context.Context) (Source, error)
	SimulationFrames(ctx context.Context) (Source, error)
	Close() error
}

// Options tunes a recording run.
type Options struct {
	Logger log.Logger
}

// Record captures the session's two streams into stateSink and trajSink
// until both sources complete or ctx is cancelled. Headers are written
// exactly once per sink before its first frame; every frame is committed
// whole and flushed before the next receive.
//
// Sinks are not closed here: they must be closed by the caller after
// Record returns, which is also the guarantee that their last frame write
// has fully completed.
//
// A clean stop (source completion or cancellation) returns nil. Any sink
// or source failure cancels the sibling loop and is returned.
func Record(ctx context.Context, session Session, stateSink, trajSink io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// the single shared clock reference for both loops
	start := time.Now()

	type result struct {
		stream string
		frames uint64
		err    error
	}
	results := make(chan result, 2)

	run := func(stream string, open func(context.Context) (Source, error), sink io.Writer) {
		frames, err := captureLoop(ctx, open, sink, start)
		if err != nil && !errors.Is(err, context.Canceled) {
			// a one-sided failure cancels the sibling so the pair of
			// files stays matched
			cancel()
		}
		results <- result{stream: stream, frames: frames, err: err}
	}
	go run("state", session.StateUpdates, stateSink)
	go run("trajectory", session.SimulationFrames, trajSink)

	var errs []error
	for i := 0; i < 2; i++ {
		res := <-results
		if res.err != nil && !errors.Is(res.err, context.Canceled) {
			logger.Error("capture loop failed",
				log.Str("stream", res.stream), log.Uint64("frames", res.frames), log.Err(res.err))
			errs = append(errs, fmt.Errorf("%s capture: %w", res.stream, res.err))
			continue
		}
		logger.Info("capture loop finished",
			log.Str("stream", res.stream), log.Uint64("frames", res.frames))
	}
	return errors.Join(errs...)
}

// captureLoop records one stream. It owns its writer exclusively and
// honors cancellation only between whole frames, so a cancelled run never
// leaves a truncated frame behind.
func captureLoop(ctx context.Context, open func(context.Context) (Source, error), sink io.Writer, start time.Time) (uint64, error) {
	src, err := open(ctx)
	if err != nil {
		return 0, err
	}

	w := recording.NewWriter(sink)
	if err := w.WriteHeader(); err != nil {
		return 0, err
	}

	var frames uint64
	for {
		payload, err := src.Recv()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return frames, context.Canceled
			}
			return frames, err
		}

		elapsed := uint64(time.Since(start).Microseconds())
		if err := w.Append(elapsed, payload); err != nil {
			return frames, err
		}
		if err := w.Flush(); err != nil {
			return frames, err
		}
		frames++

		select {
		case <-ctx.Done():
			return frames, context.Canceled
		default:
		}
	}
}
