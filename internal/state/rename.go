package state

import (
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/IRL2/nanover-utils/internal/recording"
)

// KeyRenamer rewrites mapping keys by substring substitution. It touches
// top-level update keys, removal entries and the keys of every nested
// Struct at any depth, recursing through Struct and List children. Scalar
// values and list elements that are not mappings are left untouched.
type KeyRenamer struct {
	From string
	To   string
}

// Apply returns a renamed copy of the change. The input is not modified.
func (r KeyRenamer) Apply(c Change) Change {
	out := Change{Updates: make(map[string]*structpb.Value, len(c.Updates))}
	for k, v := range c.Updates {
		out.Updates[r.rename(k)] = r.renameValue(v)
	}
	if len(c.Removals) > 0 {
		out.Removals = make([]string, len(c.Removals))
		for i, k := range c.Removals {
			out.Removals[i] = r.rename(k)
		}
	}
	return out
}

// Transform adapts the renamer into a recording payload transform using
// the given codec for both directions.
func (r KeyRenamer) Transform(codec Codec) recording.PayloadTransform {
	return func(payload []byte) ([]byte, error) {
		c, err := codec.Decode(payload)
		if err != nil {
			return nil, err
		}
		return codec.Encode(r.Apply(c))
	}
}

func (r KeyRenamer) rename(key string) string {
	return strings.ReplaceAll(key, r.From, r.To)
}

func (r KeyRenamer) renameValue(v *structpb.Value) *structpb.Value {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StructValue:
		fields := kind.StructValue.GetFields()
		out := make(map[string]*structpb.Value, len(fields))
		for k, child := range fields {
			out[r.rename(k)] = r.renameValue(child)
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: out})
	case *structpb.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]*structpb.Value, len(values))
		for i, child := range values {
			out[i] = r.renameValue(child)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: out})
	default:
		return v
	}
}
