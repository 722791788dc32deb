// Package catena presents an ordered collection of byte sources as a single
// continuous io.Reader.
//
// Sources are either file paths or already-open readers. Paths are opened
// lazily: a file is not touched until the first byte is requested from it.
// When the current source is drained the reader advances to the next one,
// and io.EOF is reported only after the last source is exhausted.
//
// Open failures are sticky. A source that fails to open reports the same
// error on every read until the caller explicitly calls Skip, so bad sources
// are never silently dropped.
//
// Callers are expected to layer their own buffering, for example with
// bufio.Reader.
package catena

import "io"

// ConcatReader is an io.Reader over a sequence of sources that can be
// inspected and advanced by the caller.
type ConcatReader interface {
	io.Reader

	// Skip abandons the current source and moves to the next one,
	// regardless of how much of the current source has been read.
	// It reports whether another source is now current.
	Skip() bool

	// Current returns the source currently being read from, or nil if
	// no source is open. It never opens a source as a side effect.
	Current() io.Reader
}

// FileConcatReader is a ConcatReader over file paths. It additionally
// reports the path of the current source.
type FileConcatReader interface {
	ConcatReader

	// FilePath returns the path of the current source. The second return
	// value is false only when all sources are exhausted. The path of a
	// source that failed to open is still reported, so callers can tell
	// which file an error belongs to.
	FilePath() (string, bool)
}

// Concat returns a ConcatReader over the given pre-opened readers, read
// in order. Readers that implement io.Closer are closed as they are
// exhausted or skipped.
func Concat(readers ...io.Reader) ConcatReader {
	return NewMultiReader(readers...)
}

// ConcatPath returns a FileConcatReader over the given file paths, read
// in order. Each file is opened only when the first byte is requested
// from it.
func ConcatPath(paths ...string) FileConcatReader {
	return NewFileReader(paths...)
}
