// Package transports provides session transport implementations for the
// recorder CLI.
package transports

import "fmt"

// rawCodec is a passthrough gRPC codec. The recorder persists messages in
// their serialized form, so decoding them into generated types would only
// be undone again; this codec hands the wire bytes through untouched while
// keeping the standard proto content subtype.
type rawCodec struct{}

// Marshal implements encoding.Codec.
func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case *[]byte:
		return *b, nil
	default:
		return nil, fmt.Errorf("raw codec: unsupported message type %T", v)
	}
}

// Unmarshal implements encoding.Codec.
func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	out, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("raw codec: unsupported message type %T", v)
	}
	*out = append([]byte(nil), data...)
	return nil
}

// Name implements encoding.Codec.
func (rawCodec) Name() string { return "proto" }
