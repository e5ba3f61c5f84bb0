// Package recorder provides the `nrec record` command.
//
// The command connects to a live session server, subscribes to its
// state-update and trajectory streams and captures both into a pair of
// recording files sharing one clock.
//
// Usage
//
//	# record from localhost:38801 into session.state and session.traj
//	nrec record session
//
//	# record from another server
//	nrec record --address sim.example.org --port 40000 session
//
// Defaults can also come from a config file (--config, JSON or YAML) or
// from NREC_ADDRESS / NREC_PORT. Flag > env > file > built-in.
// Recording stops when the server ends both streams or on Ctrl-C; either
// way both files end on whole-frame boundaries.
package recorder
