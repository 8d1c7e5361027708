package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *inputStream) string {
	var out []rune
	for {
		r, eof, ok := s.next()
		if !ok || eof {
			return string(out)
		}
		out = append(out, r)
	}
}

func TestStreamNewlineNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\r\nb", "a\nb"},
		{"a\r\rb", "a\n\nb"},
		{"a\r\n\nb", "a\n\nb"},
		{"\r\n", "\n"},
	}
	for _, tc := range cases {
		s := newInputStream(&ErrorSink{})
		s.append(tc.in)
		s.markEOF()
		assert.Equal(t, tc.want, drain(s), "input %q", tc.in)
	}
}

func TestStreamCRLFSplitAcrossChunks(t *testing.T) {
	s := newInputStream(&ErrorSink{})
	s.append("a\r")
	s.append("\nb")
	s.markEOF()
	assert.Equal(t, "a\nb", drain(s))
}

func TestStreamPositions(t *testing.T) {
	s := newInputStream(&ErrorSink{})
	s.append("ab\ncd")
	s.markEOF()

	expected := []Position{
		{Line: 1, Col: 1},
		{Line: 1, Col: 2},
		{Line: 1, Col: 3},
		{Line: 2, Col: 1},
		{Line: 2, Col: 2},
	}
	for _, want := range expected {
		_, _, ok := s.next()
		require.True(t, ok)
		assert.Equal(t, want, s.position())
	}
}

func TestStreamPositionsWithCRLF(t *testing.T) {
	s := newInputStream(&ErrorSink{})
	s.append("ab\r\ncd")
	s.markEOF()

	expected := []Position{
		{Line: 1, Col: 1},
		{Line: 1, Col: 2},
		{Line: 1, Col: 3},
		{Line: 2, Col: 1},
		{Line: 2, Col: 2},
	}
	for _, want := range expected {
		_, _, ok := s.next()
		require.True(t, ok)
		assert.Equal(t, want, s.position())
	}
}

func TestStreamNoncharacterReplaced(t *testing.T) {
	sink := &ErrorSink{}
	s := newInputStream(sink)
	s.append("a\uFFFFb")
	s.markEOF()
	assert.Equal(t, "a\uFFFDb", drain(s))
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, ErrNoncharacterInInputStream, sink.Errors()[0].Kind)
}

func TestStreamControlCharacterReported(t *testing.T) {
	sink := &ErrorSink{}
	s := newInputStream(sink)
	s.append("a\u0001b")
	s.markEOF()
	// The code point passes through, only the error is recorded.
	assert.Equal(t, "a\u0001b", drain(s))
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, ErrControlCharacterInInputStream, sink.Errors()[0].Kind)
}

func TestStreamStarvesUntilEOF(t *testing.T) {
	s := newInputStream(&ErrorSink{})
	s.append("ab")

	r, eof, ok := s.next()
	require.True(t, ok)
	assert.Equal(t, 'a', r)
	r, _, ok = s.next()
	require.True(t, ok)
	assert.Equal(t, 'b', r)

	_, eof, ok = s.next()
	assert.False(t, ok)
	assert.False(t, eof)

	s.markEOF()
	_, eof, ok = s.next()
	assert.True(t, ok)
	assert.True(t, eof)
}

func TestStreamPeek(t *testing.T) {
	s := newInputStream(&ErrorSink{})
	s.append("abc")

	got, ok := s.peek(2)
	require.True(t, ok)
	assert.Equal(t, "ab", got)

	_, ok = s.peek(4)
	assert.False(t, ok, "peek past the buffer must starve while the stream is open")

	s.markEOF()
	got, ok = s.peek(4)
	require.True(t, ok)
	assert.Equal(t, "abc", got, "at EOF peek returns the remainder")

	s.discard(2)
	got, ok = s.peek(1)
	require.True(t, ok)
	assert.Equal(t, "c", got)
}

func TestStreamUnread(t *testing.T) {
	s := newInputStream(&ErrorSink{})
	s.append("xy")
	s.markEOF()

	r, _, _ := s.next()
	assert.Equal(t, 'x', r)
	s.unread()
	r, _, _ = s.next()
	assert.Equal(t, 'x', r)
	r, _, _ = s.next()
	assert.Equal(t, 'y', r)
}
