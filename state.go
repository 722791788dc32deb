package catena

import (
	"fmt"
	"io"
)

// stateKind discriminates the variants of readerState.
type stateKind uint8

const (
	// statePending means the source has not been opened yet.
	statePending stateKind = iota
	// stateOpen means the source is open and being read.
	stateOpen
	// stateFailed means opening the source failed. The error is kept and
	// re-reported on every read until the caller skips the source.
	stateFailed
	// stateExhausted means no sources remain. Terminal.
	stateExhausted
)

func (k stateKind) String() string {
	switch k {
	case statePending:
		return "pending"
	case stateOpen:
		return "open"
	case stateFailed:
		return "failed"
	case stateExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("stateKind(%d)", uint8(k))
}

// readerState is the per-source state of a FileReader. It is a tagged
// union over {pending, open, failed, exhausted}: src is set only for
// open states, err only for failed ones.
type readerState struct {
	kind stateKind
	path string
	src  io.ReadCloser
	err  error
}

func pendingState(path string) readerState {
	return readerState{kind: statePending, path: path}
}

func exhaustedState() readerState {
	return readerState{kind: stateExhausted}
}

// open attempts the pending → open transition. On failure the state
// becomes failed and retains the error, which is then returned verbatim
// on this and every subsequent read.
//
// Calling open on any state other than pending is a bug in this package,
// never a data condition, so it panics.
func (s *readerState) open(opener Opener) error {
	if s.kind != statePending {
		panic("catena: open called on " + s.kind.String() + " state")
	}
	src, err := opener.Open(s.path)
	if err != nil {
		s.kind = stateFailed
		s.err = err
		sourceOpenErrorsTotal.Inc()
		return err
	}
	s.kind = stateOpen
	s.src = src
	sourcesOpenedTotal.Inc()
	openHandles.Add(1)
	return nil
}

// read delegates to the current variant.
//
// An exhausted state always reports io.EOF. A failed state re-reports its
// stored open error. A pending state opens the source first, then reads
// from it. An open state passes the read straight through to the source:
// a read error does not change state, so the caller may retry.
func (s *readerState) read(p []byte, opener Opener) (int, error) {
	switch s.kind {
	case stateExhausted:
		return 0, io.EOF
	case stateFailed:
		return 0, s.err
	case statePending:
		if err := s.open(opener); err != nil {
			return 0, err
		}
		return s.src.Read(p)
	case stateOpen:
		return s.src.Read(p)
	}
	panic("catena: read on unknown state " + s.kind.String())
}

// release closes the underlying source, if one is open. Close errors are
// dropped: the source has either been fully drained or deliberately
// abandoned at this point.
func (s *readerState) release() {
	if s.kind == stateOpen && s.src != nil {
		_ = s.src.Close()
		s.src = nil
		openHandles.Add(-1)
	}
}

func (s readerState) String() string {
	switch s.kind {
	case statePending:
		return fmt.Sprintf("pending(%q)", s.path)
	case stateOpen:
		return fmt.Sprintf("open(%q)", s.path)
	case stateFailed:
		return fmt.Sprintf("failed(%q, %v)", s.path, s.err)
	default:
		return "exhausted"
	}
}
