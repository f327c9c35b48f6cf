// Package archive implements the output-side archive writer: a
// zip-compatible writer and a directory-tree writer behind one shared
// interface, with sticky-error semantics (spec.md §4.9).
package archive

import "io"

// Flag is a bitmask of per-entry archive flags.
type Flag uint32

const (
	// FlagCompress stores the entry DEFLATE-compressed.
	FlagCompress Flag = 1 << iota
	// FlagAlign 4-byte aligns an uncompressed entry's data so it can be
	// mmap'd directly (needed for resources.arsc).
	FlagAlign
)

// Writer is the archive output sink every compile/link driver writes
// through: either StartEntry/Write/FinishEntry for streaming callers, or
// WriteFile for a single in-memory blob. Entries are emitted in call
// order. Once any call fails, every subsequent call is a no-op and Err
// returns the first error verbatim.
type Writer interface {
	io.Writer

	// StartEntry begins a new entry at path with the given flags. Only
	// one entry may be open at a time.
	StartEntry(path string, flags Flag) error

	// FinishEntry closes the entry opened by StartEntry.
	FinishEntry() error

	// WriteFile writes all of data as a single complete entry, a
	// shorthand for StartEntry+Write+FinishEntry.
	WriteFile(path string, flags Flag, data []byte) error

	// Err returns the first error encountered by any call on this
	// writer, or nil.
	Err() error

	// Close finalizes the archive (e.g. writes the zip central
	// directory) and releases any underlying resources.
	Close() error
}

// stickyError wraps the common "first error wins, then no-op" bookkeeping
// shared by every Writer implementation.
type stickyError struct {
	err error
}

func (s *stickyError) fail(err error) error {
	if s.err == nil {
		s.err = err
	}
	return s.err
}

func (s *stickyError) ok() bool {
	return s.err == nil
}
