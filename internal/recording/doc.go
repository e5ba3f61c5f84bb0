// Package recording implements the append-only binary log used to persist
// timestamped message streams captured from a live session.
//
// # Format
//
// A recording is a fixed 16-byte header followed by zero or more frames,
// all fields little-endian:
//
//	Header: magic_number:u64 | format_version:u64      (supported version: 2)
//	Frame*: elapsed_us:u128 | payload_len:u64 | payload[payload_len]
//
// elapsed_us is the microsecond offset from the recording session's start
// instant and is non-decreasing within one file. Payloads are opaque here;
// decoding them into state changes is the caller's concern.
//
// API surface (internal)
//
//	r, _ := recording.OpenFile(path)   // validates the header
//	defer r.Close()
//	for {
//	    f, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // f.ElapsedMicros, f.Payload
//	}
//
//	w := recording.NewWriter(sink)
//	_ = w.WriteHeader()
//	_ = w.Append(elapsed, payload) // whole frame or nothing
//	_ = w.Flush()
//
// Rewrite copies a recording to a new sink while passing every payload
// through a transform, keeping original timestamps and recomputing frame
// lengths.
package recording
