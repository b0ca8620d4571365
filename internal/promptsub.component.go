package internal

// component is the shared contract for anything the block scanner can
// build one character at a time: a nested Template or a Variable.
// A component is opened with its start offset, grown via appendChar,
// and closed exactly once, which triggers its finalization. After close
// it is immutable and may be substituted any number of times.
type component interface {
	// appendChar adds one raw character to the open component.
	appendChar(ch byte) error

	// close seals the component at endIndex (one past its last
	// character within the parent's text) and finalizes it.
	close(endIndex int) error

	// substitute resolves the component against params, returning its
	// output text or ErrUnsatisfied.
	substitute(params map[string]string) (string, error)

	// bounds returns the component's [start, end) byte span within
	// its parent's text.
	bounds() (start, end int)
}

// span tracks a component's position within its parent's text and the
// characters accumulated while the component is open.
type span struct {
	startIndex int
	endIndex   int
	pending    []byte
}

// newSpan creates an open span starting at startIndex.
func newSpan(startIndex int) span {
	return span{startIndex: startIndex, endIndex: indexUnset}
}

// ensureOpen panics unless the span is between open and close.
// Appending outside that window is a state machine bug, not a user error.
func (s *span) ensureOpen() {
	if s.startIndex == indexUnset {
		panic(panicMsgAppendBeforeStart)
	}
	if s.endIndex != indexUnset {
		panic(panicMsgAppendAfterClose)
	}
}

// appendPending buffers one character.
func (s *span) appendPending(ch byte) {
	s.ensureOpen()
	s.pending = append(s.pending, ch)
}

// seal records the end index and releases the pending buffer.
// The caller must have consumed the buffered characters first.
func (s *span) seal(endIndex int) {
	if s.endIndex != indexUnset {
		panic(panicMsgCloseTwice)
	}
	s.pending = nil
	s.endIndex = endIndex
}

// closed reports whether the span has been sealed.
func (s *span) closed() bool {
	return s.endIndex != indexUnset
}

// bounds returns the [start, end) byte span.
func (s *span) bounds() (int, int) {
	return s.startIndex, s.endIndex
}
