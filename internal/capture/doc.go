// Package capture records two concurrent remote message streams into two
// recording files that share one clock.
//
// A live session exposes a state-update source and a simulation-frame
// source. Record samples a monotonic start instant once, then runs one
// capture loop per source: wait for the next serialized message, stamp it
// with the elapsed microseconds, frame it and append it to that source's
// sink, flushing after every frame. The loops share nothing but the
// read-only start instant; each sink has exactly one owner, so no locking
// is involved and a slow source never delays the other sink.
//
// Cancellation is cooperative and joint. Cancelling the context stops both
// loops between whole frames, and an I/O failure on either sink cancels
// the session so a one-sided, unpaired recording is never produced
// silently. A loop whose source completes normally does not disturb its
// sibling.
package capture
