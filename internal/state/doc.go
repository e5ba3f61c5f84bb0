// Package state models the shared-state diffs carried in recording frame
// payloads and the operations over them.
//
// A Change is a diff against a key/value state: an updates mapping plus a
// set of removal keys. Values are protobuf structpb values, so a value is
// one of Null, Bool, Number, String, Struct or List. A Null value under an
// update key is a deletion tombstone.
//
// The on-wire payload is a small protobuf envelope produced by Codec:
// field 1 holds the updates as an embedded google.protobuf.Struct, field 2
// holds the removal keys as repeated strings.
//
// Aggregation folds an ordered change sequence into cumulative snapshots.
// Deletion is signaled exclusively by Null-valued updates; the explicit
// removals set is carried through codecs and rewrites but is not consulted
// by aggregation, matching the behavior of the producers whose recordings
// this package reads.
package state
