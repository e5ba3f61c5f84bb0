// Package id generates capture-session identifiers. IDs are 128-bit,
// lexicographically sortable values encoded as 16 bytes big-endian:
// [8 bytes ms_timestamp][8 bytes sequence]. They tag log output from a
// recording run so the two files of one session can be correlated.
package id
