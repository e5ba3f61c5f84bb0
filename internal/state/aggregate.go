package state

import "google.golang.org/protobuf/types/known/structpb"

// Fold applies one change to acc and returns it. The accumulator is owned
// by the caller; Fold mutates it in place.
//
// Every update key is applied first (Null values included), then every key
// whose current value is Null is dropped. The explicit Removals set is
// intentionally not consulted; observed producers signal deletion only
// through Null-valued updates.
func Fold(acc Snapshot, c Change) Snapshot {
	for k, v := range c.Updates {
		acc[k] = v
	}
	for k, v := range acc {
		if isNull(v) {
			delete(acc, k)
		}
	}
	return acc
}

func isNull(v *structpb.Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.GetKind().(*structpb.Value_NullValue)
	return ok
}
