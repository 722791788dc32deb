package catena

import "io"

// MultiReader reads from multiple pre-opened readers in sequence. When the
// current reader reaches io.EOF the next one takes over, and io.EOF is
// reported only after the last reader is exhausted.
//
// Unlike FileReader there is no open step and therefore no sticky failure
// mode: the inputs are already open. Sources that implement io.Closer are
// closed as they are exhausted or skipped.
type MultiReader struct {
	curr io.Reader
	rest []io.Reader
}

var _ ConcatReader = (*MultiReader)(nil)

// NewMultiReader returns a MultiReader over the given readers, read in
// order.
func NewMultiReader(readers ...io.Reader) *MultiReader {
	m := &MultiReader{}
	if len(readers) > 0 {
		m.curr = readers[0]
		m.rest = readers[1:]
	}
	return m
}

// Read reads from the current reader, advancing past exhausted readers
// until bytes are produced or every reader has been drained.
func (m *MultiReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if m.curr == nil {
			return 0, io.EOF
		}
		n, err := m.curr.Read(p)
		if n > 0 {
			readBytesTotal.Add(n)
		}
		if err == io.EOF {
			m.advance()
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Skip abandons the current reader and moves to the next one. It reports
// whether another reader is now current.
func (m *MultiReader) Skip() bool {
	sourcesSkippedTotal.Inc()
	m.advance()
	return m.curr != nil
}

// Current returns the reader currently being read from, or nil once all
// readers are exhausted.
func (m *MultiReader) Current() io.Reader {
	return m.curr
}

func (m *MultiReader) advance() {
	if c, ok := m.curr.(io.Closer); ok {
		_ = c.Close()
	}
	if len(m.rest) == 0 {
		m.curr = nil
		return
	}
	m.curr = m.rest[0]
	m.rest = m.rest[1:]
}
