package catena

import (
	"fmt"
	"io"
	"strings"
)

// FileReader reads the contents of multiple files in sequence, as if they
// were a single concatenated file. A file is opened only when the first
// byte is requested from it, and at most one file is held open at a time.
//
// If a file fails to open, every read reports that same error until Skip
// is called, and FilePath keeps naming the failing file. FileReader never
// skips a bad file on its own.
type FileReader struct {
	opener Opener
	curr   readerState
	rest   []string
}

var _ FileConcatReader = (*FileReader)(nil)

// NewFileReader returns a FileReader over the given paths, opened from
// the local filesystem in order.
func NewFileReader(paths ...string) *FileReader {
	return NewFileReaderWithOpener(osOpener, paths...)
}

// NewFileReaderWithOpener returns a FileReader that acquires its sources
// through the given Opener instead of the local filesystem.
func NewFileReaderWithOpener(opener Opener, paths ...string) *FileReader {
	f := &FileReader{opener: opener, curr: exhaustedState()}
	if len(paths) > 0 {
		f.curr = pendingState(paths[0])
		f.rest = paths[1:]
	}
	return f
}

// Read reads from the current file, advancing to the next one whenever
// the current file is drained. It returns io.EOF only once every file has
// been exhausted. A read with an empty buffer returns immediately without
// opening anything.
func (f *FileReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if f.curr.kind == stateExhausted {
			return 0, io.EOF
		}
		n, err := f.curr.read(p, f.opener)
		if n > 0 {
			readBytesTotal.Add(n)
		}
		if err == io.EOF {
			// Current file drained. Release it and move on. Some readers
			// return the last bytes together with io.EOF, so a short read
			// is returned as-is and the next call picks up the next file.
			f.advance()
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Skip abandons the current file and moves to the next path, whether the
// current file is unopened, open, or failed to open. It reports whether
// another path is now pending. Skip is the only way past an open failure.
func (f *FileReader) Skip() bool {
	sourcesSkippedTotal.Inc()
	f.advance()
	return f.curr.kind == statePending
}

// Current returns the currently open file, or nil if the current source
// is unopened, failed, or exhausted. It never opens a file.
func (f *FileReader) Current() io.Reader {
	if f.curr.kind == stateOpen {
		return f.curr.src
	}
	return nil
}

// FilePath returns the path of the current source, whether it is still
// unopened, open, or failed to open. It returns false only when all
// sources are exhausted.
func (f *FileReader) FilePath() (string, bool) {
	if f.curr.kind == stateExhausted {
		return "", false
	}
	return f.curr.path, true
}

// Close releases the currently open file, if any, and marks the reader
// exhausted. Subsequent reads return io.EOF.
func (f *FileReader) Close() error {
	f.curr.release()
	f.curr = exhaustedState()
	f.rest = nil
	return nil
}

func (f *FileReader) advance() {
	f.curr.release()
	if len(f.rest) == 0 {
		f.curr = exhaustedState()
		return
	}
	f.curr = pendingState(f.rest[0])
	f.rest = f.rest[1:]
}

// String renders the current state and the remaining paths, for
// diagnostics.
func (f *FileReader) String() string {
	var b strings.Builder
	b.WriteString("FileReader{curr: ")
	b.WriteString(f.curr.String())
	b.WriteString(", rest: [")
	for i, p := range f.rest {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", p)
	}
	b.WriteString("]}")
	return b.String()
}
