package state

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Envelope field numbers.
const (
	fieldUpdates  = 1 // embedded google.protobuf.Struct
	fieldRemovals = 2 // repeated string
)

// Codec translates between raw frame payloads and Changes. It is the seam
// between the opaque recording layer and the state model.
type Codec interface {
	Encode(c Change) ([]byte, error)
	Decode(payload []byte) (Change, error)
}

// DecodeError reports a payload that does not parse as a Change.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("state: decode change: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// ProtoCodec is the production Codec. The wire form is a protobuf message
// with the updates Struct in field 1 and removal keys in field 2.
type ProtoCodec struct{}

// Encode implements Codec.
func (ProtoCodec) Encode(c Change) ([]byte, error) {
	var out []byte
	if len(c.Updates) > 0 {
		body, err := proto.Marshal(&structpb.Struct{Fields: c.Updates})
		if err != nil {
			return nil, err
		}
		out = protowire.AppendTag(out, fieldUpdates, protowire.BytesType)
		out = protowire.AppendBytes(out, body)
	}
	for _, key := range c.Removals {
		out = protowire.AppendTag(out, fieldRemovals, protowire.BytesType)
		out = protowire.AppendString(out, key)
	}
	return out, nil
}

// Decode implements Codec. Unknown fields are skipped so newer producers
// stay readable.
func (ProtoCodec) Decode(payload []byte) (Change, error) {
	c := Change{Updates: map[string]*structpb.Value{}}
	for len(payload) > 0 {
		num, typ, n := protowire.ConsumeTag(payload)
		if n < 0 {
			return Change{}, &DecodeError{Err: protowire.ParseError(n)}
		}
		payload = payload[n:]

		switch {
		case num == fieldUpdates && typ == protowire.BytesType:
			body, n := protowire.ConsumeBytes(payload)
			if n < 0 {
				return Change{}, &DecodeError{Err: protowire.ParseError(n)}
			}
			payload = payload[n:]
			var st structpb.Struct
			if err := proto.Unmarshal(body, &st); err != nil {
				return Change{}, &DecodeError{Err: err}
			}
			for k, v := range st.GetFields() {
				c.Updates[k] = v
			}
		case num == fieldRemovals && typ == protowire.BytesType:
			key, n := protowire.ConsumeString(payload)
			if n < 0 {
				return Change{}, &DecodeError{Err: protowire.ParseError(n)}
			}
			payload = payload[n:]
			c.Removals = append(c.Removals, key)
		default:
			n := protowire.ConsumeFieldValue(num, typ, payload)
			if n < 0 {
				return Change{}, &DecodeError{Err: protowire.ParseError(n)}
			}
			payload = payload[n:]
		}
	}
	return c, nil
}
