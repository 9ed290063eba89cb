package lexer

// eof is the distinguished end-of-input sentinel. It is an int outside the
// byte range so no input byte can collide with it.
const eof = -1

// stream is a byte cursor over the raw input with single-character lookahead,
// limited rewinding, and checkpoint/restore. The tokenizer is its only
// consumer. It holds no state beyond the cursor; the source is never copied.
type stream struct {
	src []byte
	pos int
}

func newStream(src []byte) *stream {
	return &stream{src: src}
}

// peek returns the next byte without consuming it, or eof.
func (s *stream) peek() int {
	if s.pos >= len(s.src) {
		return eof
	}
	return int(s.src[s.pos])
}

// next consumes and returns the next byte, or eof.
func (s *stream) next() int {
	if s.pos >= len(s.src) {
		return eof
	}
	b := s.src[s.pos]
	s.pos++
	return int(b)
}

// pushBack rewinds the cursor by n bytes. Rewinding past the start clamps
// to offset zero.
func (s *stream) pushBack(n int) {
	s.pos -= n
	if s.pos < 0 {
		s.pos = 0
	}
}

// offset returns the current byte offset into the source.
func (s *stream) offset() int { return s.pos }

// mark returns a checkpoint that resetTo can later restore. Speculative
// lookahead (the IS NOT merge) saves a mark instead of counting characters
// back, so skipped whitespace cannot desynchronize the rewind.
func (s *stream) mark() int { return s.pos }

// resetTo restores the cursor to a previously saved checkpoint.
func (s *stream) resetTo(cp int) { s.pos = cp }
