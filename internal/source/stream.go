// Package source implements the PushBack character stream described in
// spec §4.1: a single-character read over an underlying byte source with
// an unbounded, user-managed pushback stack.
package source

import (
	"bufio"
	"io"
	"strings"
)

// Stream wraps a byte source and exposes Pop/Push. It is single-threaded
// and not restartable: once a character has been popped and not pushed
// back, it is gone. Use a *Stream for one parse only.
type Stream struct {
	r        *bufio.Reader
	pushback []rune
}

// New wraps r in a Stream.
func New(r io.Reader) *Stream {
	return &Stream{r: bufio.NewReader(r)}
}

// NewFromString is a convenience constructor for in-memory sources
// (tests, REPL input, small fixture files).
func NewFromString(s string) *Stream {
	return New(strings.NewReader(s))
}

// Pop returns the next rune and true, or (0, false) at end of input.
// A rune previously handed to Push is returned before any further bytes
// are read from the underlying reader, in LIFO order.
func (s *Stream) Pop() (rune, bool) {
	if n := len(s.pushback); n > 0 {
		r := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		return r, true
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		return 0, false
	}
	return r, true
}

// Push restores r to the front of the stream so the next Pop returns it.
// An arbitrary number of characters may be pushed back, in any order;
// they are returned in the reverse order they were pushed (LIFO).
func (s *Stream) Push(r rune) {
	s.pushback = append(s.pushback, r)
}

