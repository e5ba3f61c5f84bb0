package state

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/IRL2/nanover-utils/internal/recording"
)

// ChangeStream lazily decodes a recording into timestamped changes. It is
// single-pass: the underlying reader cannot be rewound.
type ChangeStream struct {
	r     *recording.Reader
	codec Codec
}

// NewChangeStream wraps an opened recording reader with a payload codec.
func NewChangeStream(r *recording.Reader, codec Codec) *ChangeStream {
	return &ChangeStream{r: r, codec: codec}
}

// Next returns the next (elapsed microseconds, change) pair. It returns
// io.EOF at the end of the recording; frame and decode errors end the
// stream at that point without retracting earlier results.
func (s *ChangeStream) Next() (uint64, Change, error) {
	f, err := s.r.Next()
	if err != nil {
		return 0, Change{}, err
	}
	c, err := s.codec.Decode(f.Payload)
	if err != nil {
		return 0, Change{}, err
	}
	return f.ElapsedMicros, c, nil
}

// UpdateStream exposes only the updates half of each change, matching what
// recorded producers are observed to populate. Removals are not surfaced
// in this view.
type UpdateStream struct {
	s *ChangeStream
}

// Updates derives an UpdateStream from a ChangeStream.
func Updates(s *ChangeStream) *UpdateStream { return &UpdateStream{s: s} }

// Next returns the next (elapsed microseconds, updates) pair.
func (u *UpdateStream) Next() (uint64, map[string]*structpb.Value, error) {
	ts, c, err := u.s.Next()
	if err != nil {
		return 0, nil, err
	}
	return ts, c.Updates, nil
}

// SnapshotStream folds a change stream into cumulative snapshots. The
// accumulator is owned by the stream; each Next yields an independent copy,
// so re-running the fold over the same input reproduces identical output.
type SnapshotStream struct {
	s   *ChangeStream
	acc Snapshot
}

// Aggregate derives a SnapshotStream from a ChangeStream.
func Aggregate(s *ChangeStream) *SnapshotStream {
	return &SnapshotStream{s: s, acc: Snapshot{}}
}

// Next returns the next (elapsed microseconds, snapshot) pair.
func (a *SnapshotStream) Next() (uint64, Snapshot, error) {
	ts, c, err := a.s.Next()
	if err != nil {
		return 0, nil, err
	}
	a.acc = Fold(a.acc, c)
	return ts, a.acc.Clone(), nil
}
