package parser

// Position is a one-based line/column location in the original input.
type Position struct {
	Line int
	Col  int
}

// inputStream is the preprocessing stage in front of the tokenizer. It
// normalizes CRLF and lone CR to LF while data is appended, replaces
// noncharacters with U+FFFD, records stream-level errors, and tracks the
// source position of every buffered rune so tokens and errors can carry
// line/column diagnostics.
//
// Input arrives in chunks; reads past the buffered data report starvation
// until markEOF is called, which lets the tokenizer suspend cleanly at any
// chunk boundary.
type inputStream struct {
	sink *ErrorSink

	buf  []rune
	pos  []Position
	idx  int
	last Position

	eof       bool
	pendingCR bool
	line, col int
}

func newInputStream(sink *ErrorSink) *inputStream {
	return &inputStream{sink: sink, line: 1, col: 1, last: Position{Line: 1, Col: 1}}
}

func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r&0xFFFE == 0xFFFE && r <= 0x10FFFF
}

func isControl(r rune) bool {
	return (r >= 0x00 && r <= 0x1F) || (r >= 0x7F && r <= 0x9F)
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}

// append normalizes and buffers one chunk of input. A CR at a chunk
// boundary is remembered so a LF opening the next chunk is still swallowed.
func (s *inputStream) append(chunk string) {
	for _, r := range chunk {
		at := Position{Line: s.line, Col: s.col}
		if r == '\n' {
			if s.pendingCR {
				// The CR already advanced the line.
				s.pendingCR = false
				continue
			}
			s.line++
			s.col = 1
			s.push('\n', at)
			continue
		}
		if s.pendingCR {
			s.pendingCR = false
		}
		if r == '\r' {
			s.pendingCR = true
			s.line++
			s.col = 1
			s.push('\n', at)
			continue
		}
		s.col++
		switch {
		case r >= 0xD800 && r <= 0xDFFF:
			s.sink.add(at, ErrSurrogateInInputStream)
			s.push('\uFFFD', at)
		case isNoncharacter(r):
			s.sink.add(at, ErrNoncharacterInInputStream)
			s.push('\uFFFD', at)
		case isControl(r) && r != 0x00 && !isASCIIWhitespace(r):
			s.sink.add(at, ErrControlCharacterInInputStream)
			s.push(r, at)
		default:
			s.push(r, at)
		}
	}
}

func (s *inputStream) push(r rune, at Position) {
	s.buf = append(s.buf, r)
	s.pos = append(s.pos, at)
}

func (s *inputStream) markEOF() {
	s.eof = true
	s.pendingCR = false
}

// next returns the next rune. eof is true once the stream is exhausted and
// closed; ok is false when more data is needed before anything can be read.
func (s *inputStream) next() (r rune, eof bool, ok bool) {
	if s.idx < len(s.buf) {
		r = s.buf[s.idx]
		s.last = s.pos[s.idx]
		s.idx++
		return r, false, true
	}
	if s.eof {
		return 0, true, true
	}
	return 0, false, false
}

// unread steps back over the most recently read rune.
func (s *inputStream) unread() {
	if s.idx > 0 {
		s.idx--
		if s.idx > 0 {
			s.last = s.pos[s.idx-1]
		}
	}
}

// peek returns up to n upcoming runes without consuming them. ok is false
// when fewer than n runes are buffered and the stream is still open; at EOF
// whatever remains is returned.
func (s *inputStream) peek(n int) (string, bool) {
	if len(s.buf)-s.idx >= n {
		return string(s.buf[s.idx : s.idx+n]), true
	}
	if s.eof {
		return string(s.buf[s.idx:]), true
	}
	return "", false
}

func (s *inputStream) discard(n int) {
	for i := 0; i < n && s.idx < len(s.buf); i++ {
		s.last = s.pos[s.idx]
		s.idx++
	}
}

// position reports the location of the most recently read rune.
func (s *inputStream) position() Position {
	return s.last
}
