// Package reader provides the `nrec read` command.
//
// The command prints the records of a shared-state recording file, one
// JSON line per record by default.
//
// Usage
//
//	# timestamps and state updates, one record per line
//	nrec read session.state
//
//	# timestamps and the aggregated state instead of the raw updates
//	nrec read --full session.state
//
//	# block-per-record human-readable output
//	nrec read --pretty session.state
//	nrec read --full --pretty session.state
//
//	# keep only records matching a CEL predicate
//	nrec read --filter 'keys.exists(k, k.startsWith("avatar."))' session.state
//
//	# write a copy of the recording with "narupa" renamed to "nanover"
//	# in every mapping key (cannot be combined with display flags)
//	nrec read --narupa fixed.state session.state
//
// Header validation failures abort before any output is produced.
package reader
