package state

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Change is one recorded diff against the shared key/value state.
//
// A key should not appear both in Updates with a non-null value and in
// Removals; producers are not known to violate this but it is not enforced
// here.
type Change struct {
	Updates  map[string]*structpb.Value
	Removals []string
}

// Snapshot is the cumulative key/value state after folding a change
// sequence. A key is present iff its most recently applied value was
// non-null.
type Snapshot map[string]*structpb.Value

// Clone returns a shallow copy of the snapshot. Values are immutable by
// convention, so sharing them between snapshots is safe.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
